package services

import (
	"testing"

	"news-reader/models"

	"github.com/stretchr/testify/assert"
)

func TestCoverPicker(t *testing.T) {
	p := NewCoverPicker(map[string][]string{
		"default":  {"/d/1.jpg", "/d/2.jpg", "/d/3.jpg"},
		"politics": {"/p/1.jpg"},
	})

	assert.Equal(t, "/own.jpg", p.Pick(models.News{ID: "n1", ImageURL: "/own.jpg"}, "politics"))
	assert.Equal(t, "/p/1.jpg", p.Pick(models.News{ID: "n1"}, "politics"))

	first := p.Pick(models.News{ID: "n42"}, "unknown")
	assert.Contains(t, []string{"/d/1.jpg", "/d/2.jpg", "/d/3.jpg"}, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Pick(models.News{ID: "n42"}, "unknown"), "stable per article")
	}
}

func TestCoverPickerWithoutImages(t *testing.T) {
	assert.Equal(t, "", NewCoverPicker(nil).Pick(models.News{ID: "n1"}, ""))
	var p *CoverPicker
	assert.Equal(t, "", p.Pick(models.News{ID: "n1"}, ""))
}
