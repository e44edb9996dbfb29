package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Options configures the two CORS policies of the API.
//
// Routes under PublicPrefix serve the public school site: they are read without
// credentials, so any listed origin (or every origin when PublicOrigins is
// empty) gets GET and POST only. Every other route is the staff console:
// credentialed, all methods, restricted to AllowedOrigins.
type Options struct {
	AllowedOrigins []string
	PublicOrigins  []string
	PublicPrefix   string
}

type policy struct {
	origins     map[string]struct{}
	credentials bool
	methods     string
}

func newPolicy(origins []string, credentials bool, methods string) policy {
	set := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		set[strings.TrimRight(origin, "/")] = struct{}{}
	}
	return policy{origins: set, credentials: credentials, methods: methods}
}

// allows reports whether origin may call; an empty origin list allows every origin.
func (p policy) allows(origin string) bool {
	if len(p.origins) == 0 {
		return true
	}
	_, ok := p.origins[strings.TrimRight(origin, "/")]
	return ok
}

// New returns the CORS middleware. Content-Disposition is exposed so browsers
// can name downloaded statements.
func New(opts Options) gin.HandlerFunc {
	console := newPolicy(opts.AllowedOrigins, true, "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	public := newPolicy(opts.PublicOrigins, false, "GET, POST, OPTIONS")
	publicPrefix := strings.TrimRight(opts.PublicPrefix, "/")

	return func(c *gin.Context) {
		p := console
		if publicPrefix != "" && (c.Request.URL.Path == publicPrefix || strings.HasPrefix(c.Request.URL.Path, publicPrefix+"/")) {
			p = public
		}

		header := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case origin != "" && p.allows(origin):
			header.Set("Access-Control-Allow-Origin", origin)
		case origin == "" && len(p.origins) == 0:
			header.Set("Access-Control-Allow-Origin", "*")
		}
		header.Set("Vary", "Origin")
		if p.credentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}
		header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With, X-Request-ID")
		header.Set("Access-Control-Allow-Methods", p.methods)
		header.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")
		header.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
