package resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholderURL(t *testing.T) {
	base := "https://placehold.co/300x200.png"
	assert.Equal(t, base+"?text=Python%20Pro%20Devs", placeholderURL(base, "Python Pro Devs"))
	assert.Equal(t, base+"?text=Qu%C3%ADmica%20%26%20Vida", placeholderURL(base, "Química & Vida"))
	assert.Equal(t, base+"?text=Matematic's%20learns(1)*!", placeholderURL(base, "Matematic's learns(1)*!"))
}

func TestImageHint(t *testing.T) {
	assert.Equal(t, "data science", imageHint("Data Science con Python"))
	assert.Equal(t, "python", imageHint("Python"))
	assert.Equal(t, "", imageHint(""))
}
