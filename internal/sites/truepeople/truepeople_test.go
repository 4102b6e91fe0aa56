package truepeople

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchURLForPassesThroughURLs(t *testing.T) {
	key := "https://www.truepeoplesearch.com/find/person/x123"
	require.Equal(t, key, SearchURLFor(key))
}

func TestSearchURLForFormatsAddresses(t *testing.T) {
	require.Equal(t,
		"https://www.truepeoplesearch.com/find/address/123%20Main%20St-Apt%204",
		SearchURLFor("123 Main St_Apt 4"))
}

func TestSiteNormalizesKeys(t *testing.T) {
	site := Site()
	require.True(t, site.KeyIsURL)
	require.NotNil(t, site.KeyToURL)
	require.Equal(t,
		"https://www.truepeoplesearch.com/find/address/742-Evergreen-Ter",
		site.KeyToURL("742_Evergreen_Ter"))
}
