package browser

import "github.com/mazen160/go-random"

// userAgents is a small pool of realistic desktop user agents. Target sites
// rate-limit obvious automation; a rotated real-browser UA keeps sessions
// indistinguishable from one another.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// PickUserAgent returns a random entry from the pool.
func PickUserAgent() string {
	i, err := random.IntRange(0, len(userAgents))
	if err != nil {
		return userAgents[0]
	}
	return userAgents[i]
}
