package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// ErrInvalidCatalog is returned when a catalog fails schema or record validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable classroom data every view starts from.
type Catalog struct {
	Students          []Student           `yaml:"students" json:"students" validate:"required,min=1,dive"`
	Topics            []Topic             `yaml:"topics" json:"topics" validate:"required,min=1,dive"`
	TopicMetadata     []TopicMeta         `yaml:"topic_metadata" json:"topic_metadata" validate:"dive"`
	Classes           []string            `yaml:"classes" json:"classes" validate:"required,min=1"`
	Subjects          []string            `yaml:"subjects" json:"subjects" validate:"required,min=1"`
	QueryTemplates    map[string][]string `yaml:"query_templates" json:"query_templates" validate:"required,min=1,dive,min=1"`
	Attendance        []AttendanceDay     `yaml:"attendance" json:"attendance" validate:"dive"`
	WeeklyPerformance []WeekScore         `yaml:"weekly_performance" json:"weekly_performance" validate:"dive"`
	Blooms            []BloomLevel        `yaml:"blooms" json:"blooms" validate:"dive"`
	Activities        Activities          `yaml:"activities" json:"activities"`
	QuerySignatures   []QuerySignature    `yaml:"query_signatures" json:"query_signatures" validate:"dive"`
	Timelines         []Timeline          `yaml:"timelines" json:"timelines" validate:"dive"`
	StudyActivity     []StudyActivity     `yaml:"study_activity" json:"study_activity" validate:"dive"`
	TopicStruggles    []TopicStruggle     `yaml:"topic_struggles" json:"topic_struggles" validate:"dive"`
	RecentQuestions   RecentQuestions     `yaml:"recent_questions" json:"recent_questions"`
}

var (
	validate     = validator.New()
	embeddedOnce sync.Once
	embedded     *Catalog
	embeddedErr  error
)

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	embeddedOnce.Do(func() {
		embedded, embeddedErr = Parse(embeddedCatalog)
	})
	return embedded, embeddedErr
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses and validates a catalog from r.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML into a catalog and checks every record.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.checkReferences(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return &c, nil
}

func (c *Catalog) checkReferences() error {
	seen := make(map[string]bool, len(c.Students))
	for _, s := range c.Students {
		if seen[s.Name] {
			return fmt.Errorf("duplicate student %q", s.Name)
		}
		seen[s.Name] = true
	}
	for topic := range c.QueryTemplates {
		if _, ok := c.Topic(topic); !ok {
			return fmt.Errorf("query templates for unknown topic %q", topic)
		}
	}

	known := func(section, name string) error {
		if !seen[name] {
			return fmt.Errorf("%s for unknown student %q", section, name)
		}
		return nil
	}
	signed := make(map[string]bool, len(c.QuerySignatures))
	for _, s := range c.QuerySignatures {
		if err := known("query signature", s.Name); err != nil {
			return err
		}
		if signed[s.Name] {
			return fmt.Errorf("duplicate query signature for %q", s.Name)
		}
		signed[s.Name] = true
		if s.Levels.Total() > s.Volume {
			return fmt.Errorf("query signature for %q has %d levelled queries but a volume of %d", s.Name, s.Levels.Total(), s.Volume)
		}
	}
	for _, t := range c.Timelines {
		if err := known("timeline", t.Student); err != nil {
			return err
		}
	}
	for _, a := range c.StudyActivity {
		if err := known("study activity", a.Name); err != nil {
			return err
		}
		for _, topic := range a.StrugglingWith {
			if _, ok := c.Topic(topic); !ok {
				return fmt.Errorf("study activity for %q names unknown topic %q", a.Name, topic)
			}
		}
	}
	for _, s := range c.TopicStruggles {
		if _, ok := c.Topic(s.Topic); !ok {
			return fmt.Errorf("topic struggle for unknown topic %q", s.Topic)
		}
	}
	for topic := range c.RecentQuestions.Topics {
		if _, ok := c.Topic(topic); !ok {
			return fmt.Errorf("recent questions for unknown topic %q", topic)
		}
	}
	return nil
}

// Student looks up a student by name.
func (c *Catalog) Student(name string) (Student, bool) {
	for _, s := range c.Students {
		if s.Name == name {
			return s, true
		}
	}
	return Student{}, false
}

// Topic looks up a topic by name.
func (c *Catalog) Topic(name string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

// Meta returns syllabus metadata for a topic.
func (c *Catalog) Meta(topic string) (TopicMeta, bool) {
	for _, m := range c.TopicMetadata {
		if m.Topic == topic {
			return m, true
		}
	}
	return TopicMeta{}, false
}

// Timeline returns the recorded session for a student.
func (c *Catalog) Timeline(student string) (Timeline, bool) {
	for _, t := range c.Timelines {
		if t.Student == student {
			return t, true
		}
	}
	return Timeline{}, false
}

// QuestionsFor returns the recent questions for topic, or the default list
// when topic is empty or has none recorded.
func (c *Catalog) QuestionsFor(topic string) []string {
	if q, ok := c.RecentQuestions.Topics[topic]; ok && topic != "" {
		return slices.Clone(q)
	}
	return slices.Clone(c.RecentQuestions.Default)
}

// StudentNames returns student names in catalog order.
func (c *Catalog) StudentNames() []string {
	names := make([]string, len(c.Students))
	for i, s := range c.Students {
		names[i] = s.Name
	}
	return names
}

// TopicNames returns topic names in catalog order.
func (c *Catalog) TopicNames() []string {
	names := make([]string, len(c.Topics))
	for i, t := range c.Topics {
		names[i] = t.Name
	}
	return names
}

// TemplateTopics returns the topics that have query templates, in catalog order.
func (c *Catalog) TemplateTopics() []string {
	var out []string
	for _, t := range c.Topics {
		if len(c.QueryTemplates[t.Name]) > 0 {
			out = append(out, t.Name)
		}
	}
	return out
}

// ActivitiesFor picks the activity feed for a selection. A single selected
// student wins, then the subject, then the class, then the default feed.
func (c *Catalog) ActivitiesFor(students []string, subject, class string) []Activity {
	if len(students) == 1 {
		if a, ok := c.Activities.Students[students[0]]; ok {
			return slices.Clone(a)
		}
	}
	if a, ok := c.Activities.Subjects[subject]; ok {
		return slices.Clone(a)
	}
	if a, ok := c.Activities.Classes[class]; ok {
		return slices.Clone(a)
	}
	return slices.Clone(c.Activities.Default)
}

// Grade maps an average score to a letter grade.
func Grade(average int) string {
	switch {
	case average >= 90:
		return "A"
	case average >= 87:
		return "B+"
	case average >= 83:
		return "B"
	case average >= 77:
		return "B-"
	case average >= 70:
		return "C"
	case average >= 60:
		return "D"
	default:
		return "F"
	}
}
