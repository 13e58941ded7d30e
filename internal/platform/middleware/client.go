package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"visapath/pkg/requestcontext"
)

// ClientMetadata parses the User-Agent header into a compact client
// description and stores it in the context. The audit trail attaches it to
// administrative mutations.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClient(r.Context(), DescribeClient(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DescribeClient renders a raw User-Agent as "<browser> <major> on
// <platform>". Unparseable parts fall back to named unknowns so the result is
// never empty.
func DescribeClient(rawUA string) string {
	if rawUA == "" {
		return "Unknown Client"
	}

	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	if name == "" {
		name = "Unknown Browser"
	}
	if version != "" {
		if dot := strings.Index(version, "."); dot > 0 {
			version = version[:dot]
		}
		name = name + " " + version
	}

	platform := ua.OS()
	if ua.Mobile() && ua.Platform() != "" {
		platform = ua.Platform()
	}
	if platform == "" {
		platform = "Unknown Platform"
	}

	return strings.TrimSpace(name + " on " + platform)
}
