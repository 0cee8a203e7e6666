package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeFallback(t *testing.T) {
	assert.Equal(t, "concise", Mode("concise").Key)
	assert.Equal(t, DefaultModeKey, Mode("no-such-mode").Key)
	assert.Equal(t, DefaultModeKey, Mode("").Key)
}

func TestModeInstructionsNonEmpty(t *testing.T) {
	for _, m := range Modes {
		assert.NotEmpty(t, m.Instruction, "mode %s", m.Key)
	}
}

func TestPersonaInstruction(t *testing.T) {
	assert.NotEmpty(t, PersonaInstruction("marketing-guru"))
	assert.Empty(t, PersonaInstruction(DefaultPersonaKey))
	assert.Empty(t, PersonaInstruction("unknown-persona"))
}

func TestExamplePersonasExist(t *testing.T) {
	keys := map[string]bool{}
	for _, k := range PersonaKeys() {
		keys[k] = true
	}
	for _, ex := range ExamplePrompts {
		assert.True(t, keys[ex.Persona], "example references unknown persona %q", ex.Persona)
	}
}
