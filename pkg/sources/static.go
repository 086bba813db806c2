package sources

import (
	"context"

	"github.com/agentstation/toolmap/pkg/servers"
)

// StaticCatalog returns a CatalogSource that always yields a copy of list.
func StaticCatalog(list ...servers.Descriptor) CatalogSource {
	frozen := servers.CloneAll(list)
	return CatalogFunc(func(ctx context.Context, _ bool) ([]servers.Descriptor, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return servers.CloneAll(frozen), nil
	})
}

// StaticOverrides returns an OverrideSource that always yields a copy of list.
func StaticOverrides(list ...servers.Descriptor) OverrideSource {
	frozen := servers.CloneAll(list)
	return OverrideFunc(func(ctx context.Context) ([]servers.Descriptor, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return servers.CloneAll(frozen), nil
	})
}

// StaticActive returns an ActiveSource that always reports keys.
func StaticActive(keys ...string) ActiveSource {
	set := servers.NewActiveSet(keys...)
	return ActiveFunc(func(ctx context.Context) (servers.ActiveSet, error) {
		if err := ctx.Err(); err != nil {
			return servers.ActiveSet{}, err
		}
		return set, nil
	})
}
