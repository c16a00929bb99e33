package mutation

import "github.com/n-r-w/docpager"

// DefaultSellerFallback label used when a seller id is not found in the mirror.
const DefaultSellerFallback = "unknown seller"

// Option coordinator option.
type Option func(*Coordinator)

// WithLogger sets the logger.
func WithLogger(l docpager.ILogger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithEnricher adds a function applied to the fields of create and update calls.
// It receives a copy of the fields and may change it in place.
func WithEnricher(f func(docpager.Fields) docpager.Fields) Option {
	return func(c *Coordinator) {
		c.enrichers = append(c.enrichers, f)
	}
}

// WithLabel resolves labelField from the string id stored in idField, e.g. sellerName from sellerId.
// fallback is stored if the id is unknown to labeler. Fields without idField are left as is.
func WithLabel(idField, labelField string, labeler ILabeler, fallback string) Option {
	return WithEnricher(func(fields docpager.Fields) docpager.Fields {
		id, ok := fields[idField].(string)
		if !ok || id == "" {
			return fields
		}

		if label, ok := labeler.Lookup(id); ok {
			fields[labelField] = label
		} else {
			fields[labelField] = fallback
		}

		return fields
	})
}
