package oembed

import "github.com/invopop/jsonschema"

// Schema describes the JSON document produced by Builder.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&Response{})
	s.Title = "oEmbed response"
	return s
}
