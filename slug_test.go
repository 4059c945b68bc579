package seogen_test

import (
	"testing"

	"github.com/fwojciec/seogen"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	t.Run("strips punctuation and dashes between words", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "grand-plaza-hotel-suite-300", seogen.Slugify("Grand Plaza Hotel — Suite 300!"))
	})

	t.Run("returns empty slug for empty title", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, seogen.Slugify(""))
	})

	t.Run("returns empty slug for punctuation only", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, seogen.Slugify(" !?& "))
	})

	t.Run("collapses whitespace runs and trims", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hello-world", seogen.Slugify("  Hello \t  World\n"))
	})

	t.Run("collapses and trims hyphens", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "foo-bar", seogen.Slugify("---Foo---Bar---"))
	})

	t.Run("treats non-breaking space as whitespace", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "ocean-view", seogen.Slugify("Ocean\u00a0View"))
	})

	t.Run("drops non-ASCII letters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "caf-dj-vu", seogen.Slugify("Café Déjà Vu"))
	})

	t.Run("keeps underscores and digits", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "room_101-deluxe", seogen.Slugify("Room_101 Deluxe"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		titles := []string{
			"Grand Plaza Hotel — Suite 300!",
			"  --Weird__Title--  with  spaces ",
			"Café Déjà Vu",
			"Ünïcödé & Sons, Ltd.",
			"a - b - c",
			"",
		}
		for _, title := range titles {
			once := seogen.Slugify(title)
			assert.Equal(t, once, seogen.Slugify(once), "title %q", title)
		}
	})

	t.Run("same title yields same slug", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, seogen.Slugify("Beach Resort"), seogen.Slugify("Beach Resort"))
	})
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	t.Run("joins base and slug", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://yourdomain.com/ocean-view", seogen.PageURL("https://yourdomain.com", "ocean-view"))
	})

	t.Run("drops trailing slash from base", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://yourdomain.com/ocean-view", seogen.PageURL("https://yourdomain.com/", "ocean-view"))
	})
}
