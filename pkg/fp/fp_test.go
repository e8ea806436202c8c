package fp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNonZero(t *testing.T) {
	assert.True(t, IsNone(FromNonZero("")))
	assert.True(t, IsNone(FromNonZero(0)))
	assert.Equal(t, "x", GetOrElseOpt("")(FromNonZero("x")))
}

func TestFromPointer(t *testing.T) {
	var nilStr *string
	assert.True(t, IsNone(FromPointer(nilStr)))

	s := ""
	// an empty string behind a pointer is still a value
	assert.True(t, IsSome(FromPointer(&s)))
}

func TestFoldOpt(t *testing.T) {
	describe := FoldOpt(
		func() string { return "none" },
		func(n int) string { return "some" },
	)
	assert.Equal(t, "none", describe(None[int]()))
	assert.Equal(t, "some", describe(Some(3)))
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	type login struct{ user, pass string }

	res := Validate(login{},
		func(l login) error { return Required("username")(l.user) },
		func(l login) error { return Required("password")(l.pass) },
		func(l login) error { return errors.New("plain") },
	)
	require.True(t, IsFailure(res))

	var verrs ValidationErrors
	require.ErrorAs(t, GetError(res), &verrs)
	require.Len(t, verrs, 3)
	assert.Equal(t, "username", verrs[0].Field)
	assert.Equal(t, "password", verrs[1].Field)
	assert.Equal(t, ValidationError{Message: "plain"}, verrs[2])
	assert.Equal(t, "username: is required; password: is required; plain", verrs.Error())
}

func TestValidate_FlattensNestedErrors(t *testing.T) {
	nested := ValidationErrors{{Field: "a", Message: "bad"}, {Field: "b", Message: "bad"}}
	res := Validate(1, func(int) error { return nested })

	var verrs ValidationErrors
	require.ErrorAs(t, GetError(res), &verrs)
	assert.Equal(t, nested, verrs)
}

func TestValidate_Success(t *testing.T) {
	res := Validate("  ana ", Required("username"))
	assert.False(t, IsFailure(res))
	assert.NoError(t, GetError(res))
}
