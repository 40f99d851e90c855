package repo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- HAPPY PATH TESTS ---

func TestParseReference_AcceptedForms(t *testing.T) {
	cases := []string{
		"octo/widgets",
		"github.com/octo/widgets",
		"https://github.com/octo/widgets",
		"http://github.com/octo/widgets/",
		"https://github.com/octo/widgets.git",
		"https://www.github.com/octo/widgets/tree/main/src",
		"git@github.com:octo/widgets.git",
		"  octo/widgets  ",
	}
	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			ref, err := ParseReference(input)
			require.NoError(t, err)
			assert.Equal(t, "octo", ref.Owner)
			assert.Equal(t, "widgets", ref.Name)
			assert.Equal(t, "octo/widgets", ref.FullName())
			assert.Equal(t, "https://github.com/octo/widgets", ref.URL())
		})
	}
}

func TestReference_ToRepository(t *testing.T) {
	repo := Reference{Owner: "octo", Name: "widgets"}.ToRepository()

	assert.Equal(t, "octo/widgets", repo.FullName)
	assert.Equal(t, "octo", repo.Owner)
	assert.Equal(t, "widgets", repo.Name)
	assert.Equal(t, "https://github.com/octo/widgets", repo.URL)
}

// --- UNHAPPY PATH TESTS ---

func TestParseReference_Empty_ReturnsSentinel(t *testing.T) {
	_, err := ParseReference("   ")
	assert.ErrorIs(t, err, ErrEmptyReference)
}

func TestParseReference_Malformed_ReturnsInvalidReferenceError(t *testing.T) {
	for _, input := range []string{"widgets", "octo/", "/widgets", "https://gitlab.com/octo/widgets"} {
		_, err := ParseReference(input)
		var refErr *InvalidReferenceError
		assert.True(t, errors.As(err, &refErr), "input %q", input)
	}
}

func TestPaths_PreservesOrder(t *testing.T) {
	files := []RepositoryFile{{Path: "b.py"}, {Path: "a/c.py", Size: SizeOf(3)}}
	assert.Equal(t, []string{"b.py", "a/c.py"}, Paths(files))
	assert.Equal(t, "c.py", files[1].Name())
}
