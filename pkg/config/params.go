package config

import (
	"context"
	"fmt"

	"github.com/rhuss/relay/pkg/paramstore"
)

// NeedsParameterStore reports whether any value still has to be fetched
// from Parameter Store.
func (c *Config) NeedsParameterStore() bool {
	return len(c.parameterRefs()) > 0
}

// ResolveParameters fills every empty value that has a _parameter reference
// with the parameter's value. Explicit and file-provided values win.
func ResolveParameters(ctx context.Context, cfg *Config, getter paramstore.Getter) error {
	for _, ref := range cfg.parameterRefs() {
		val, err := getter.GetParameter(ctx, ref.name)
		if err != nil {
			return fmt.Errorf("%s: %w", ref.field, err)
		}
		*ref.dst = val
	}
	return nil
}

type parameterRef struct {
	field string
	name  string
	dst   *string
}

func (c *Config) parameterRefs() []parameterRef {
	var refs []parameterRef
	if c.Upstream.APIKeyParameter != "" && c.Upstream.APIKey == "" {
		refs = append(refs, parameterRef{"upstream.api_key_parameter", c.Upstream.APIKeyParameter, &c.Upstream.APIKey})
	}
	if c.Upstream.ProfileARNParameter != "" && c.Upstream.ProfileARN == "" {
		refs = append(refs, parameterRef{"upstream.profile_arn_parameter", c.Upstream.ProfileARNParameter, &c.Upstream.ProfileARN})
	}
	return refs
}
