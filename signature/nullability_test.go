package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/sigkit/signature"
)

func TestAnnotationNullability(t *testing.T) {
	tests := []struct {
		annotation string
		want       signature.Nullability
	}{
		{"Lorg/jetbrains/annotations/Nullable;", signature.Nullable},
		{"org.jetbrains.annotations.NotNull", signature.NotNull},
		{"Landroidx/annotation/NonNull;", signature.NotNull},
		{"javax.annotation.CheckForNull", signature.Nullable},
		{"Ljava/lang/Deprecated;", signature.NullabilityUnknown},
		{"", signature.NullabilityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.annotation, func(t *testing.T) {
			assert.Equal(t, tt.want, signature.AnnotationNullability(tt.annotation))
		})
	}
}

func TestNullabilityFromAnnotationsFirstMatchWins(t *testing.T) {
	got := signature.NullabilityFromAnnotations([]string{
		"Ljava/lang/Deprecated;",
		"Landroidx/annotation/Nullable;",
		"Landroidx/annotation/NonNull;",
	})
	assert.Equal(t, signature.Nullable, got)

	assert.Equal(t, signature.NullabilityUnknown, signature.NullabilityFromAnnotations(nil))
}

func TestResolveNullability(t *testing.T) {
	assert.True(t, signature.ResolveNullability(signature.Nullable))
	assert.False(t, signature.ResolveNullability(signature.NotNull))
	assert.Equal(t, signature.DefaultNullability, signature.ResolveNullability(signature.NullabilityUnknown))
}

func TestFirstKnown(t *testing.T) {
	assert.Equal(t, signature.NotNull,
		signature.FirstKnown(signature.NullabilityUnknown, signature.NotNull, signature.Nullable))
	assert.Equal(t, signature.NullabilityUnknown, signature.FirstKnown())
}
