// Package hcl provides the concrete HCL implementation of the
// configuration loading interface defined in the config package. It is
// responsible for file discovery, parsing, and HCL-to-model translation,
// including mapping manifest field types onto cty types.
package hcl
