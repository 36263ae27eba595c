package service

import (
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/order-wizard/ow-api/internal/domain/auth"
	apperrors "github.com/order-wizard/ow-api/internal/errors"
)

// ProfileEvaluator evaluates a query expression against a raw profile.
// Production uses the JMESPath implementation; tests may stub it.
type ProfileEvaluator interface {
	Evaluate(expr string, data any) (any, error)
}

// jmespathEvaluator implements ProfileEvaluator using go-jmespath.
type jmespathEvaluator struct{}

func (jmespathEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// Claim fallback chains, tried in order. Each entry is a JMESPath expression
// against the raw userinfo payload.
var (
	idExprs    = []string{"sub", "id", "user.id"}
	nameExprs  = []string{"name", "preferred_username", "login"}
	emailExprs = []string{"email"}
)

// IdentityExtractor derives a stable Identity from provider profiles whose
// claim shapes vary.
type IdentityExtractor struct {
	eval ProfileEvaluator
}

// IdentityExtractorOptions configures an IdentityExtractor.
type IdentityExtractorOptions struct {
	// Evaluator overrides the JMESPath evaluator, for tests.
	Evaluator ProfileEvaluator
}

// NewIdentityExtractor constructs an extractor with the default evaluator.
func NewIdentityExtractor(opts IdentityExtractorOptions) *IdentityExtractor {
	eval := opts.Evaluator
	if eval == nil {
		eval = jmespathEvaluator{}
	}
	return &IdentityExtractor{eval: eval}
}

// Extract maps a raw profile to an Identity. The subject is required; name
// and email stay nil when no string claim in their chain matches. Only the
// subject chain stringifies numbers, so providers that return numeric IDs
// still work.
func (e *IdentityExtractor) Extract(profile map[string]any) (domainauth.Identity, error) {
	id, ok := e.firstScalar(profile, idExprs)
	if !ok {
		return domainauth.Identity{}, apperrors.Auth("profile carries no usable subject identifier")
	}
	identity := domainauth.Identity{ID: id}
	if name, ok := e.firstString(profile, nameExprs); ok {
		identity.Name = &name
	}
	if email, ok := e.firstString(profile, emailExprs); ok {
		identity.Email = &email
	}
	return identity, nil
}

// firstString evaluates each expression in order and returns the first
// non-empty string claim. Non-string values are skipped.
func (e *IdentityExtractor) firstString(profile map[string]any, exprs []string) (string, bool) {
	for _, expr := range exprs {
		v, err := e.eval.Evaluate(expr, profile)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// firstScalar evaluates each expression in order and returns the first
// non-empty string or number, stringified.
func (e *IdentityExtractor) firstScalar(profile map[string]any, exprs []string) (string, bool) {
	for _, expr := range exprs {
		v, err := e.eval.Evaluate(expr, profile)
		if err != nil || v == nil {
			continue
		}
		if s := stringifyScalar(v); s != "" {
			return s, true
		}
	}
	return "", false
}

// stringifyScalar renders string and number claim values. JSON numbers
// arrive as float64; integral ones are rendered without a decimal point.
func stringifyScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case int:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	default:
		return ""
	}
}
