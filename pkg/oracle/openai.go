package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"

	skerrors "github.com/strtupify/simkit/pkg/errors"
	"github.com/strtupify/simkit/pkg/observability"
)

// Wire shapes for structured output. Scores travel as raw JSON so a single
// malformed entry drops instead of failing the whole map.
type weightsResponse struct {
	Weights []weightEntry `json:"weights" jsonschema_description:"One confidence entry per participant"`
}

type weightEntry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

var (
	weightsSchema    = generateSchema[weightsResponse]()
	verdictSchema    = generateSchema[Verdict]()
	multiplierSchema = generateSchema[Multiplier]()
)

// OpenAIOracle implements Oracle against the OpenAI Responses API.
// The client and model are injected; no process-wide singletons.
type OpenAIOracle struct {
	client *openai.Client
	model  string
	tracer *observability.Tracer
}

// NewOpenAIOracle creates an oracle backed by the given client and model.
func NewOpenAIOracle(client *openai.Client, model string) *OpenAIOracle {
	return &OpenAIOracle{client: client, model: model, tracer: observability.NewTracer()}
}

// GenerateWeights implements Oracle.
func (o *OpenAIOracle) GenerateWeights(ctx context.Context, req WeightsRequest) (map[string]float64, error) {
	raw, err := o.structuredCall(ctx, "weights", "ParticipantWeights", weightsSchema, weightsInstructions, weightsInput(req))
	if err != nil {
		return nil, err
	}
	return decodeWeights(raw)
}

// GenerateLine implements Oracle.
func (o *OpenAIOracle) GenerateLine(ctx context.Context, req LineRequest) (string, error) {
	ctx, span := o.tracer.StartOracleSpan(ctx, "line", req.Speaker.Name)
	defer span.End()

	items := make([]responses.ResponseInputItemUnionParam, 0, len(req.RecentDialogue)+1)
	for _, l := range req.RecentDialogue {
		items = append(items, responses.ResponseInputItemParamOfMessage(
			fmt.Sprintf("%s: %s", l.Speaker, l.Message), responses.EasyInputMessageRoleAssistant))
	}
	items = append(items, responses.ResponseInputItemParamOfMessage(
		fmt.Sprintf("%s:", req.Speaker.Name), responses.EasyInputMessageRoleAssistant))

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(200),
		Instructions:    openai.String(lineInstructions(req)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: items,
		},
	}
	resp, err := callWithRetry(ctx, o.client, params)
	if err != nil {
		err = fmt.Errorf("%w: generate line: %v", skerrors.ErrOracleUnavailable, err)
		observability.RecordError(span, err)
		return "", err
	}
	return resp.OutputText(), nil
}

// GenerateVerdict implements Oracle.
func (o *OpenAIOracle) GenerateVerdict(ctx context.Context, req VerdictRequest) (Verdict, error) {
	call, instructions := "verdict", verdictInstructions
	if req.Summarize {
		call, instructions = "summary", summaryInstructions
	}
	raw, err := o.structuredCall(ctx, call, "MeetingVerdict", verdictSchema, instructions, transcriptInput(req.Transcript))
	if err != nil {
		return Verdict{}, err
	}
	var v Verdict
	if err := json.Unmarshal(raw, &v); err != nil {
		return Verdict{}, fmt.Errorf("%w: decode verdict: %v", skerrors.ErrOracleUnavailable, err)
	}
	return v, nil
}

// GenerateMultiplier implements Oracle.
func (o *OpenAIOracle) GenerateMultiplier(ctx context.Context, req MultiplierRequest) (Multiplier, error) {
	raw, err := o.structuredCall(ctx, "multiplier", "EffortMultiplier", multiplierSchema, multiplierInstructions, multiplierInput(req))
	if err != nil {
		return Multiplier{}, err
	}
	var m Multiplier
	if err := json.Unmarshal(raw, &m); err != nil {
		return Multiplier{}, fmt.Errorf("%w: decode multiplier: %v", skerrors.ErrOracleUnavailable, err)
	}
	return m, nil
}

// structuredCall issues one strict-schema request and returns the raw JSON text.
func (o *OpenAIOracle) structuredCall(ctx context.Context, call, name string, schema map[string]interface{}, instructions, input string) ([]byte, error) {
	ctx, span := o.tracer.StartOracleSpan(ctx, call, "")
	defer span.End()

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:   name,
			Schema: schema,
			Strict: openai.Bool(true),
			Type:   "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(800),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}
	resp, err := callWithRetry(ctx, o.client, params)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", skerrors.ErrOracleUnavailable, name, err)
		observability.RecordError(span, err)
		return nil, err
	}
	return []byte(resp.OutputText()), nil
}

// decodeWeights parses the weights payload, dropping entries whose score
// fails numeric coercion rather than guessing among key aliases.
func decodeWeights(raw []byte) (map[string]float64, error) {
	var wire struct {
		Weights []struct {
			Name  string          `json:"name"`
			Score json.RawMessage `json:"score"`
		} `json:"weights"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: decode weights: %v", skerrors.ErrOracleUnavailable, err)
	}
	out := make(map[string]float64, len(wire.Weights))
	for _, e := range wire.Weights {
		if e.Name == "" {
			continue
		}
		score, ok := coerceScore(e.Score)
		if !ok {
			continue
		}
		out[e.Name] = score
	}
	return out, nil
}

func coerceScore(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
