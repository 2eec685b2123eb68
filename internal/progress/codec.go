package progress

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"ccse-study-service/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://progress.json"

// documentSchema describes the persisted progress document. Missing
// favorites or history are tolerated and normalized to empty values.
const documentSchema = `{
  "type": "object",
  "required": ["stats"],
  "properties": {
    "stats": {
      "type": "object",
      "required": ["examsTaken", "examsPassed", "totalQuestionsAnswered", "totalCorrect"],
      "properties": {
        "examsTaken": {"type": "integer", "minimum": 0},
        "examsPassed": {"type": "integer", "minimum": 0},
        "totalQuestionsAnswered": {"type": "integer", "minimum": 0},
        "totalCorrect": {"type": "integer", "minimum": 0}
      }
    },
    "favorites": {
      "type": "array",
      "items": {"type": "integer"}
    },
    "questionHistory": {
      "type": "object",
      "propertyNames": {"pattern": "^[0-9]+$"},
      "additionalProperties": {
        "type": "object",
        "required": ["seen", "incorrect"],
        "properties": {
          "seen": {"type": "integer", "minimum": 0},
          "incorrect": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(documentSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Decode parses and validates a persisted progress document.
// Any failure wraps domain.ErrInvalidProgress.
func Decode(raw []byte) (domain.ProgressState, error) {
	sch, err := schema()
	if err != nil {
		return domain.ProgressState{}, fmt.Errorf("compile progress schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return domain.ProgressState{}, fmt.Errorf("%w: %v", domain.ErrInvalidProgress, err)
	}
	if err := sch.Validate(inst); err != nil {
		return domain.ProgressState{}, fmt.Errorf("%w: %v", domain.ErrInvalidProgress, err)
	}

	var state domain.ProgressState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.ProgressState{}, fmt.Errorf("%w: %v", domain.ErrInvalidProgress, err)
	}
	for id, stats := range state.QuestionHistory {
		if stats.Incorrect > stats.Seen {
			return domain.ProgressState{}, fmt.Errorf("%w: question %d incorrect %d > seen %d",
				domain.ErrInvalidProgress, id, stats.Incorrect, stats.Seen)
		}
	}
	return Normalize(state, nil), nil
}

// Encode serializes the state in its canonical form.
func Encode(state domain.ProgressState) ([]byte, error) {
	return json.Marshal(Normalize(state, nil))
}

// Normalize returns a copy with sorted, de-duplicated favorites, non-nil
// collections, counters clamped to zero and incorrect clamped to seen. With an
// index, ids outside the catalog are dropped.
func Normalize(state domain.ProgressState, index QuestionIndex) domain.ProgressState {
	out := domain.NewProgressState()
	out.Stats = domain.Stats{
		ExamsTaken:             max(state.Stats.ExamsTaken, 0),
		ExamsPassed:            max(state.Stats.ExamsPassed, 0),
		TotalQuestionsAnswered: max(state.Stats.TotalQuestionsAnswered, 0),
		TotalCorrect:           max(state.Stats.TotalCorrect, 0),
	}

	seen := make(map[int]struct{}, len(state.Favorites))
	for _, id := range state.Favorites {
		if _, dup := seen[id]; dup {
			continue
		}
		if index != nil && !index.HasQuestion(id) {
			continue
		}
		seen[id] = struct{}{}
		out.Favorites = append(out.Favorites, id)
	}
	sort.Ints(out.Favorites)

	for id, stats := range state.QuestionHistory {
		if index != nil && !index.HasQuestion(id) {
			continue
		}
		stats.Seen = max(stats.Seen, 0)
		stats.Incorrect = min(max(stats.Incorrect, 0), stats.Seen)
		out.QuestionHistory[id] = stats
	}
	return out
}
