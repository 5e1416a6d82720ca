package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/restifygo/internal/config"
	"github.com/vk/restifygo/internal/schema"
)

// translateAPI merges an api block into the model. Later files override
// earlier ones attribute by attribute, so a deployment can layer a local
// override file on top of the base configuration.
func translateAPI(dst *config.APIConfig, s *schema.APIBlock) {
	if s.BasePath != "" {
		dst.BasePath = s.BasePath
	}
	if s.ActionLogRepository != "" {
		dst.ActionLogRepository = s.ActionLogRepository
	}
}

// translateRepository converts the HCL-specific repository schema into the
// agnostic model.
func translateRepository(s *schema.RepositoryBlock) (*config.RepositoryDefinition, error) {
	def := &config.RepositoryDefinition{
		Key:                s.Key,
		Label:              s.Label,
		Prefix:             s.Prefix,
		ModelType:          s.Model,
		Table:              s.Table,
		GloballySearchable: s.GloballySearchable,
	}
	if def.Label == "" {
		def.Label = def.Key
	}
	for _, f := range s.Fields {
		fieldType, err := translateType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		def.Fields = append(def.Fields, &config.FieldDefinition{
			Name:     f.Name,
			Type:     fieldType,
			Optional: f.Optional,
		})
	}
	return def, nil
}

// translateType maps a manifest type keyword onto the cty type used for
// payload validation.
func translateType(name string) (cty.Type, error) {
	switch name {
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	case "any":
		return cty.DynamicPseudoType, nil
	default:
		return cty.NilType, fmt.Errorf("unsupported type %q (want string, number, bool, or any)", name)
	}
}
