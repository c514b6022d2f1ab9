package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/pkg/apperrors"
)

var courseSchema = &Schema{Fields: []Field{
	{Name: "nameEn", Kind: String, Required: true},
	{Name: "nameAr", Kind: String, Required: true},
	{Name: "price", Kind: Number, Min: Float(0)},
	{Name: "published", Kind: Bool},
}}

func TestValidate_StripsUnknownFields(t *testing.T) {
	out, err := courseSchema.Validate(map[string]any{
		"nameEn":  "Go Basics",
		"nameAr":  "أساسيات",
		"isAdmin": true,
		"extra":   "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nameEn": "Go Basics", "nameAr": "أساسيات"}, out)
}

func TestValidate_CollectsAllErrorsInDeclarationOrder(t *testing.T) {
	_, err := courseSchema.Validate(map[string]any{
		"price":     "free",
		"published": "maybe",
	})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
	assert.Equal(t,
		`"nameEn" is required, "nameAr" is required, "price" must be a number, "published" must be a boolean`,
		apperrors.MessageOf(err))
}

func TestValidate_RequiredRejectsEmptyAndNull(t *testing.T) {
	_, err := courseSchema.Validate(map[string]any{"nameEn": "", "nameAr": nil})
	require.Error(t, err)
	assert.Equal(t,
		`"nameEn" is not allowed to be empty, "nameAr" must be a string`,
		apperrors.MessageOf(err))
}

func TestValidate_OptionalEmptyNeedsAllowEmpty(t *testing.T) {
	schema := &Schema{Fields: []Field{
		{Name: "subject", Kind: String, AllowEmpty: true},
		{Name: "phone", Kind: String},
	}}

	out, err := schema.Validate(map[string]any{"subject": "", "phone": "123"})
	require.NoError(t, err)
	assert.Equal(t, "", out["subject"])

	_, err = schema.Validate(map[string]any{"phone": ""})
	require.Error(t, err)
	assert.Equal(t, `"phone" is not allowed to be empty`, apperrors.MessageOf(err))
}

func TestValidate_AllowEmptyNullPassesThrough(t *testing.T) {
	schema := &Schema{Fields: []Field{{Name: "subject", Kind: String, AllowEmpty: true}}}
	out, err := schema.Validate(map[string]any{"subject": nil})
	require.NoError(t, err)
	value, present := out["subject"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestValidate_AppliesDefaults(t *testing.T) {
	schema := &Schema{Fields: []Field{
		{Name: "featuresEn", Kind: StringSlice, Default: []string{}},
		{Name: "read", Kind: Bool, Default: true},
	}}
	out, err := schema.Validate(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, out["featuresEn"])
	assert.Equal(t, true, out["read"])
}

func TestValidate_NumericCoercion(t *testing.T) {
	schema := &Schema{Fields: []Field{
		{Name: "rating", Kind: Int, Required: true, Min: Float(1), Max: Float(5)},
	}}

	out, err := schema.Validate(map[string]any{"rating": "4"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, out["rating"])

	_, err = schema.Validate(map[string]any{"rating": 4.5})
	require.Error(t, err)
	assert.Equal(t, `"rating" must be an integer`, apperrors.MessageOf(err))

	_, err = schema.Validate(map[string]any{"rating": 6})
	require.Error(t, err)
	assert.Equal(t, `"rating" must be less than or equal to 5`, apperrors.MessageOf(err))

	_, err = schema.Validate(map[string]any{"rating": 0})
	require.Error(t, err)
	assert.Equal(t, `"rating" must be greater than or equal to 1`, apperrors.MessageOf(err))
}

func TestValidate_EmailAndUUID(t *testing.T) {
	schema := &Schema{Fields: []Field{
		{Name: "email", Kind: Email, Required: true},
		{Name: "courseId", Kind: UUID, Required: true},
	}}

	_, err := schema.Validate(map[string]any{"email": "not-an-email", "courseId": "abc"})
	require.Error(t, err)
	assert.Equal(t,
		`"email" must be a valid email, "courseId" must be a valid GUID`,
		apperrors.MessageOf(err))

	out, err := schema.Validate(map[string]any{
		"email":    "user@example.com",
		"courseId": "7b1e1d51-28bb-4a10-a0e8-6f3d1c2a9a11",
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", out["email"])
}

func TestValidate_StringSlice(t *testing.T) {
	schema := &Schema{Fields: []Field{{Name: "tags", Kind: StringSlice}}}

	out, err := schema.Validate(map[string]any{"tags": []any{"go", "backend"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "backend"}, out["tags"])

	_, err = schema.Validate(map[string]any{"tags": []any{"go", 7}})
	require.Error(t, err)
	assert.Equal(t, `"tags" must contain only strings`, apperrors.MessageOf(err))
}

func TestValidate_MinLen(t *testing.T) {
	schema := &Schema{Fields: []Field{{Name: "password", Kind: String, Required: true, MinLen: 6}}}
	_, err := schema.Validate(map[string]any{"password": "short"})
	require.Error(t, err)
	assert.Equal(t, `"password" length must be at least 6 characters long`, apperrors.MessageOf(err))
}

func TestRegistry_ResolveFallsBackToResource(t *testing.T) {
	reg := NewRegistry()
	createOnly := &Schema{Fields: []Field{{Name: "nameEn", Kind: String, Required: true}}}
	shared := &Schema{Fields: []Field{{Name: "q", Kind: String}}}
	reg.Register("levels", "create", createOnly)
	reg.Register("search", "", shared)

	assert.Same(t, createOnly, reg.Resolve("levels", "create"))
	assert.Nil(t, reg.Resolve("levels", "update"))
	assert.Same(t, shared, reg.Resolve("search", "anything"))
}
