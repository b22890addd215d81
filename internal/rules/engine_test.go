package rules

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "imexspec/pkg/domain-errors"
)

func newTestEngine(rules []Rule, required map[string][]RequiredField) *Engine {
	return NewEngine(NewInMemoryStoreWithRules(rules, required), slog.New(slog.DiscardHandler))
}

func TestEngine_Evaluate_RequiredFields(t *testing.T) {
	engine := NewEngine(NewInMemoryStore(), slog.New(slog.DiscardHandler))
	ctx := context.Background()

	t.Run("missing required fields produce field errors", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{})
		require.NoError(t, err)
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Errors, "diametro")
		assert.Contains(t, result.Errors, "classe_pressao")
		assert.Contains(t, result.Errors, "passagem", "ball valves additionally require bore selection")
	})

	t.Run("valve-scoped requirements do not leak to other types", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "BORBOLETA", map[string]any{})
		require.NoError(t, err)
		assert.NotContains(t, result.Errors, "passagem")
	})

	t.Run("empty valve type is a bad request", func(t *testing.T) {
		_, err := engine.Evaluate(ctx, "", map[string]any{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func TestEngine_Evaluate_Actions(t *testing.T) {
	ctx := context.Background()

	t.Run("block emits error when current value is outside the allowed list", func(t *testing.T) {
		engine := newTestEngine([]Rule{{
			ID:              "npt-small-bore",
			Condition:       Condition{Attribute: "tipo_extremidade", StringValue: strp("NPT")},
			TargetAttribute: "diametro",
			Action:          ActionBlock,
			AllowedValues:   []string{"0.5", "1", "2"},
			ErrorMessage:    "rosqueado limitado a 2 polegadas",
			Priority:        10,
			Active:          true,
		}}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"tipo_extremidade": "NPT",
			"diametro":         "8",
		})
		require.NoError(t, err)
		assert.Equal(t, "rosqueado limitado a 2 polegadas", result.Errors["diametro"])
		require.Len(t, result.AffectedFields, 1)
		assert.Equal(t, ActionBlock, result.AffectedFields[0].Action)
	})

	t.Run("block passes when value is allowed", func(t *testing.T) {
		engine := newTestEngine([]Rule{{
			ID:              "npt-small-bore",
			Condition:       Condition{Attribute: "tipo_extremidade", StringValue: strp("NPT")},
			TargetAttribute: "diametro",
			Action:          ActionBlock,
			AllowedValues:   []string{"0.5", "1", "2"},
			Priority:        10,
			Active:          true,
		}}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"tipo_extremidade": "NPT",
			"diametro":         "2",
		})
		require.NoError(t, err)
		assert.True(t, result.IsValid)
	})

	t.Run("block without message uses the default with allowed list", func(t *testing.T) {
		engine := newTestEngine([]Rule{{
			ID:              "r",
			Condition:       Condition{Attribute: "a", StringValue: strp("x")},
			TargetAttribute: "b",
			Action:          ActionBlock,
			AllowedValues:   []string{"1", "2"},
			Priority:        10,
			Active:          true,
		}}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{"a": "x", "b": "9"})
		require.NoError(t, err)
		assert.Contains(t, result.Errors["b"], `"9"`)
		assert.Contains(t, result.Errors["b"], "1, 2")
	})

	t.Run("require emits error only when target unset", func(t *testing.T) {
		rule := Rule{
			ID:              "flanged-face",
			Condition:       Condition{Attribute: "tipo_extremidade", StringValue: strp("FLANGEADO")},
			TargetAttribute: "face_flange",
			Action:          ActionRequire,
			Priority:        10,
			Active:          true,
		}
		engine := newTestEngine([]Rule{rule}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{"tipo_extremidade": "FLANGEADO"})
		require.NoError(t, err)
		assert.Contains(t, result.Errors["face_flange"], "tipo_extremidade = FLANGEADO")

		result, err = engine.Evaluate(ctx, "ESFERA", map[string]any{
			"tipo_extremidade": "FLANGEADO",
			"face_flange":      "RF",
		})
		require.NoError(t, err)
		assert.True(t, result.IsValid)
	})

	t.Run("suggest never overwrites an existing value", func(t *testing.T) {
		rule := Rule{
			ID:              "nace-stem",
			Condition:       Condition{Attribute: "nace_compliant", BoolValue: boolp(true)},
			TargetAttribute: "material_haste",
			Action:          ActionSuggest,
			SuggestedValue:  "ASTM_A182_F51",
			Priority:        10,
			Active:          true,
		}
		engine := newTestEngine([]Rule{rule}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{"nace_compliant": true})
		require.NoError(t, err)
		assert.Equal(t, "ASTM_A182_F51", result.Suggestions["material_haste"].Value)

		result, err = engine.Evaluate(ctx, "ESFERA", map[string]any{
			"nace_compliant": true,
			"material_haste": "ASTM_A182_F316",
		})
		require.NoError(t, err)
		assert.NotContains(t, result.Suggestions, "material_haste")
	})

	t.Run("hide wins over show for the same field", func(t *testing.T) {
		engine := newTestEngine([]Rule{
			{
				ID:              "show-torque",
				Condition:       Condition{Attribute: "a", StringValue: strp("x")},
				TargetAttribute: "torque_atuador",
				Action:          ActionShow,
				Priority:        20,
				Active:          true,
			},
			{
				ID:              "hide-torque",
				Condition:       Condition{Attribute: "b", StringValue: strp("y")},
				TargetAttribute: "torque_atuador",
				Action:          ActionHide,
				Priority:        10,
				Active:          true,
			},
		}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{"a": "x", "b": "y"})
		require.NoError(t, err)
		require.Len(t, result.AffectedFields, 1)
		assert.Equal(t, ActionHide, result.AffectedFields[0].Action)
	})

	t.Run("boolean conditions never match display strings", func(t *testing.T) {
		rule := Rule{
			ID:              "bool-trigger",
			Condition:       Condition{Attribute: "nace_compliant", BoolValue: boolp(true)},
			TargetAttribute: "material_haste",
			Action:          ActionRequire,
			Priority:        10,
			Active:          true,
		}
		engine := newTestEngine([]Rule{rule}, nil)

		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{"nace_compliant": "Sim"})
		require.NoError(t, err)
		assert.True(t, result.IsValid, "string value must not trigger a boolean condition")
	})
}

func TestEngine_CrossFieldChecks(t *testing.T) {
	engine := newTestEngine(nil, nil)
	ctx := context.Background()

	t.Run("carbon steel body with NACE is a hard error", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"nace_compliant": true,
			"material_corpo": "ASTM_A216_WCB",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Errors, "material_corpo")
	})

	t.Run("fire safe with PTFE seat is only a warning", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"fire_safe":     true,
			"material_sede": "PTFE",
		})
		require.NoError(t, err)
		assert.True(t, result.IsValid)
		assert.Contains(t, result.Warnings, "material_sede")
	})

	t.Run("seawater with carbon steel body warns", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"servico":        "AGUA_MAR",
			"material_corpo": "ASTM_A216_WCB",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Warnings, "material_corpo")
	})

	t.Run("seawater with duplex body does not warn", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"servico":        "AGUA_MAR",
			"material_corpo": "ASTM_A995_5A",
		})
		require.NoError(t, err)
		assert.NotContains(t, result.Warnings, "material_corpo")
	})

	t.Run("high temperature with PTFE seat is a hard error", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"temperatura_operacao": 250,
			"material_sede":        "RPTFE",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Errors, "material_sede")
	})

	t.Run("temperature accepts numeric strings", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"temperatura_operacao": "250",
			"material_sede":        "PTFE",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Errors, "material_sede")
	})

	t.Run("H2S fluid without NACE flag warns", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"fluido": "Gás com H2S",
		})
		require.NoError(t, err)
		assert.Contains(t, result.Warnings, "nace_compliant")
	})

	t.Run("H2S fluid with NACE flag does not warn", func(t *testing.T) {
		result, err := engine.Evaluate(ctx, "ESFERA", map[string]any{
			"fluido":         "Gás com H2S",
			"nace_compliant": true,
		})
		require.NoError(t, err)
		assert.NotContains(t, result.Warnings, "nace_compliant")
	})
}
