package advice

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_rules.yaml
var defaultRules []byte

type Rules struct {
	Source      string       `yaml:"source"`
	Bullets     BulletRules  `yaml:"bullets"`
	Allocation  Allocation   `yaml:"allocation"`
	Topics      []Topic      `yaml:"topics"`
	Caps        Caps         `yaml:"caps"`
	Scoring     Scoring      `yaml:"scoring"`
	FastPath    FastPath     `yaml:"fast_path"`
	Annotations []Annotation `yaml:"annotations"`
	Messages    Messages     `yaml:"messages"`
}

// BulletRules decides which lines of a chunk are standalone statements.
type BulletRules struct {
	Markers             []string `yaml:"markers"`
	LeadWords           []string `yaml:"lead_words"`
	MinLeadLength       int      `yaml:"min_lead_length"`
	SentencePunctuation []string `yaml:"sentence_punctuation"`
	MinSentenceLength   int      `yaml:"min_sentence_length"`
}

// Allocation describes budget-allocation statements and questions about them.
type Allocation struct {
	ContextMarkers   []string `yaml:"context_markers"`
	Terms            []string `yaml:"terms"`
	MinLength        int      `yaml:"min_length"`
	QuestionPatterns []string `yaml:"question_patterns"`
	QuestionHints    []string `yaml:"question_hints"`
}

// Topic adds boost terms when its name appears in a question.
type Topic struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

type Caps struct {
	Allocation int `yaml:"allocation"`
	Strong     int `yaml:"strong"`
	Weak       int `yaml:"weak"`
	Minimal    int `yaml:"minimal"`
}

type Scoring struct {
	BoostBonus    float64 `yaml:"boost_bonus"`
	BrevityBonus  float64 `yaml:"brevity_bonus"`
	BrevityLength int     `yaml:"brevity_length"`
}

// FastPath answers questions matching a pattern with a fixed statement.
type FastPath struct {
	Patterns []string `yaml:"patterns"`
	Answer   string   `yaml:"answer"`
}

// Annotation appends Example to a bullet containing any Match phrase when
// the question mentions any of Topics.
type Annotation struct {
	Topics  []string `yaml:"topics"`
	Match   []string `yaml:"match"`
	Example string   `yaml:"example"`
}

type Messages struct {
	Insufficient string `yaml:"insufficient"`
	NoStatement  string `yaml:"no_statement"`
}

// DefaultRules returns the rules compiled into the binary.
func DefaultRules() *Rules {
	r := &Rules{}
	if err := yaml.Unmarshal(defaultRules, r); err != nil {
		panic(fmt.Sprintf("advice: embedded rules: %v", err))
	}
	return r
}

// LoadRules reads a YAML rules file over the defaults. An empty path returns
// the defaults.
func LoadRules(path string) (*Rules, error) {
	r := DefaultRules()
	if path == "" {
		return r, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(raw, r); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return r, nil
}

func (r *Rules) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return fmt.Errorf("source must not be empty")
	}
	if len(r.Bullets.Markers) == 0 {
		return fmt.Errorf("at least one bullet marker is required")
	}
	if r.Caps.Allocation <= 0 || r.Caps.Strong <= 0 || r.Caps.Weak <= 0 || r.Caps.Minimal <= 0 {
		return fmt.Errorf("caps must be positive, got %+v", r.Caps)
	}
	if len(r.FastPath.Patterns) > 0 && strings.TrimSpace(r.FastPath.Answer) == "" {
		return fmt.Errorf("fast_path answer must not be empty when patterns are set")
	}
	for i, a := range r.Annotations {
		if len(a.Topics) == 0 || len(a.Match) == 0 || a.Example == "" {
			return fmt.Errorf("annotation %d needs topics, match and example", i)
		}
	}
	return nil
}
