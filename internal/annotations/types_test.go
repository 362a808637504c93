package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagKind_RoundTrip(t *testing.T) {
	kinds := []TagKind{
		SummaryTag, DescriptionTag, OperationIDTag, TagTag,
		ParamPathTag, ParamQueryTag, ParamHeaderTag, ParamCookieTag,
		RequestBodyTag, RequestFormDataBodyTag, ResponseBodyTag,
	}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			parsed, err := ParseTagKind(kind.String())
			require.NoError(t, err)
			assert.Equal(t, kind, parsed)
		})
	}
}

func TestParseTagKind_Unknown(t *testing.T) {
	kind, err := ParseTagKind("deprecated")
	assert.Error(t, err)
	assert.Equal(t, UnknownTag, kind)
	assert.Equal(t, "unknown", kind.String())
}

func TestParameterLocation(t *testing.T) {
	in, ok := ParamCookieTag.parameterLocation()
	assert.True(t, ok)
	assert.Equal(t, InCookie, in)

	_, ok = SummaryTag.parameterLocation()
	assert.False(t, ok)
}

func TestParameterKey(t *testing.T) {
	a := Parameter{Name: "id", In: InPath}
	b := Parameter{Name: "id", In: InQuery}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), Parameter{Name: "id", In: InPath, Required: true}.Key())
}
