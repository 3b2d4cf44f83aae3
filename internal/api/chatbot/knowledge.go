package chatbot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type FaqEntry struct {
	ID       string
	Question string
	Answer   string
	Category string
}

type IntentTemplate struct {
	ID               string
	TemplateQuestion string
	Intent           string
	Slots            []string
	AnswerTemplate   string
}

type KnowledgeBase struct {
	Faqs    []FaqEntry
	Intents []IntentTemplate
}

const (
	faqFileName    = "faq_data.csv"
	intentFileName = "intent_template.csv"
)

// LoadKnowledgeBase reads both CSV files from dir. A missing file leaves
// its side of the knowledge base empty rather than failing the load.
func LoadKnowledgeBase(dir string, log *logrus.Logger) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{}

	faqs, err := loadFaqFile(filepath.Join(dir, faqFileName), log)
	if err != nil {
		return nil, fmt.Errorf("failed to load FAQ data: %w", err)
	}
	kb.Faqs = faqs

	intents, err := loadIntentFile(filepath.Join(dir, intentFileName), log)
	if err != nil {
		return nil, fmt.Errorf("failed to load intent templates: %w", err)
	}
	kb.Intents = intents

	log.Infof("Loaded knowledge base: %d FAQ entries, %d intent templates", len(kb.Faqs), len(kb.Intents))
	return kb, nil
}

func loadFaqFile(path string, log *logrus.Logger) ([]FaqEntry, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("FAQ file not found: %s", path)
			return nil, nil
		}
		return nil, err
	}

	var faqs []FaqEntry
	for lineNo, row := range rows {
		entry := FaqEntry{
			ID:       field(row, header, "id"),
			Question: field(row, header, "question"),
			Answer:   field(row, header, "answer"),
			Category: field(row, header, "category"),
		}
		if entry.ID == "" && entry.Question == "" {
			continue
		}
		if entry.ID == "" || entry.Question == "" || entry.Answer == "" {
			log.Warnf("Skipping invalid FAQ row at line %d", lineNo+2)
			continue
		}
		faqs = append(faqs, entry)
	}

	return faqs, nil
}

func loadIntentFile(path string, log *logrus.Logger) ([]IntentTemplate, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Intent template file not found: %s", path)
			return nil, nil
		}
		return nil, err
	}

	var templates []IntentTemplate
	for lineNo, row := range rows {
		tpl := IntentTemplate{
			ID:               field(row, header, "id"),
			TemplateQuestion: field(row, header, "template_question"),
			Intent:           field(row, header, "intent"),
			AnswerTemplate:   field(row, header, "answer_template"),
		}

		if tpl.ID == "" && tpl.TemplateQuestion == "" {
			continue
		}
		if tpl.ID == "" || tpl.TemplateQuestion == "" || tpl.Intent == "" {
			log.Warnf("Skipping invalid intent row at line %d", lineNo+2)
			continue
		}

		for _, s := range strings.Split(field(row, header, "slots"), ",") {
			if s = strings.TrimSpace(s); s != "" {
				tpl.Slots = append(tpl.Slots, s)
			}
		}

		auditTemplate(tpl, log)
		templates = append(templates, tpl)
	}

	return templates, nil
}

// auditTemplate flags declared slots that never appear as a
// [PLACEHOLDER] in the answer template. Authoring mistake, not fatal.
func auditTemplate(tpl IntentTemplate, log *logrus.Logger) {
	for _, slot := range tpl.Slots {
		if tpl.AnswerTemplate == "" {
			continue
		}
		if !strings.Contains(tpl.AnswerTemplate, "["+slot+"]") {
			log.Warnf("Intent template %s declares slot %s not present in its answer template", tpl.ID, slot)
		}
	}
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	header := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
		header[h] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}

	return rows, header, nil
}

func field(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
