// Package transform maps raw calendar records to ClickUp task records.
//
// Transformation is pure: the same RawRecord always yields the same tasks.
package transform

import (
	"fmt"
	"strings"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/parser"
)

// Rejection reasons.
const (
	ReasonMissingCampaignName = "missing campaign name"
	ReasonMissingDueDate      = "missing due date"
	ReasonMissingDescription  = "missing description"
	ReasonMissingLaunchDate   = "missing launch date"
)

// DueDateLeadDays is how long before the send date a brief is due.
const DueDateLeadDays = 14

// Tag values applied by the transformer.
const (
	TagEmailBrief    = "Email Brief"
	TagSMSBrief      = "SMS Brief"
	TagSMS           = "SMS"
	TagProductLaunch = "Product Launch"
)

// CampaignTypePriority maps a brief's campaign type to a task priority.
var CampaignTypePriority = map[string]models.Priority{
	"Product Launches": models.PriorityHigh,
	"Promotions":       models.PriorityHigh,
	"Story Telling":    models.PriorityNormal,
	"Brand Moments":    models.PriorityNormal,
	"Problem Solving":  models.PriorityNormal,
	"Promo":            models.PriorityHigh,
}

// LaunchPriority maps a launch calendar A-D grade to a task priority.
var LaunchPriority = map[string]models.Priority{
	"A": models.PriorityUrgent,
	"B": models.PriorityHigh,
	"C": models.PriorityNormal,
	"D": models.PriorityLow,
}

// Transformer builds TaskRecords for one brand.
type Transformer struct {
	// Brand is the first tag of every task.
	Brand string
	// Assignee is copied onto every task when set.
	Assignee string
}

// New returns a Transformer for brand.
func New(brand, assignee string) *Transformer {
	return &Transformer{Brand: brand, Assignee: assignee}
}

// Transform maps one raw record to its tasks. An email brief yields one task,
// or two when it also requests SMS. A record failing required-field checks
// returns a *models.RecordValidationError and no tasks.
func (t *Transformer) Transform(rec models.RawRecord) ([]models.TaskRecord, error) {
	switch rec.Kind {
	case models.RecordLaunch:
		task, err := t.launch(rec)
		if err != nil {
			return nil, err
		}
		return []models.TaskRecord{task}, nil
	default:
		return t.brief(rec)
	}
}

func (t *Transformer) reject(rec models.RawRecord, reason string) error {
	return &models.RecordValidationError{Sheet: rec.Sheet, Cell: rec.Cell, Reason: reason}
}

func (t *Transformer) brief(rec models.RawRecord) ([]models.TaskRecord, error) {
	name := rec.Get(models.FieldCampaignName)
	if name == "" {
		return nil, t.reject(rec, ReasonMissingCampaignName)
	}

	start, _ := parser.ParseDate(rec.Get(models.FieldDateOfSend))
	due := rec.DueFallback
	if !start.IsZero() {
		due = start.AddDays(-DueDateLeadDays)
	}
	if due.IsZero() {
		return nil, t.reject(rec, ReasonMissingDueDate)
	}

	week := rec.Week
	if week == "" {
		week = rec.Sheet
	}
	campaignType := rec.Get(models.FieldCampaignType)

	title := "[" + week + "] "
	if campaignType != "" {
		title += campaignType + ": "
	}
	title += name

	priority, ok := CampaignTypePriority[campaignType]
	if !ok {
		priority = models.PriorityNormal
	}

	b := briefView{rec: rec, start: start}
	tags := t.tags(week, TagEmailBrief, campaignType)
	source := models.Source{Sheet: rec.Sheet, Cell: rec.Cell}

	tasks := []models.TaskRecord{{
		Name:        title,
		Description: b.emailDescription(),
		DueDate:     due,
		StartDate:   start,
		Priority:    priority,
		Status:      models.StatusOpen,
		Tags:        tags,
		Assignee:    t.Assignee,
		Kind:        models.KindEmail,
		Source:      source,
	}}

	if rec.Get(models.FieldAssetSMS) != "" || rec.Get(models.FieldSMSCopy) != "" {
		smsTags := make([]string, 0, len(tags)+1)
		for _, tag := range tags {
			if tag == TagEmailBrief {
				tag = TagSMSBrief
			}
			smsTags = append(smsTags, tag)
		}
		smsTags = append(smsTags, TagSMS)

		tasks = append(tasks, models.TaskRecord{
			Name:        "[SMS] " + title,
			Description: b.smsDescription(),
			DueDate:     due,
			StartDate:   start,
			Priority:    priority,
			Status:      models.StatusOpen,
			Tags:        smsTags,
			Assignee:    t.Assignee,
			Kind:        models.KindSMS,
			Source:      source,
		})
	}
	return tasks, nil
}

func (t *Transformer) launch(rec models.RawRecord) (models.TaskRecord, error) {
	desc := rec.Get(models.FieldDescription)
	if desc == "" {
		return models.TaskRecord{}, t.reject(rec, ReasonMissingDescription)
	}
	launchDate, ok := parser.ParseDate(rec.Get(models.FieldLaunchDate))
	if !ok {
		return models.TaskRecord{}, t.reject(rec, ReasonMissingLaunchDate)
	}

	priority, ok := LaunchPriority[strings.ToUpper(rec.Get(models.FieldLaunchPrio))]
	if !ok {
		priority = models.PriorityNormal
	}

	var parts []string
	addLine(&parts, "SKU/Subcat", rec.Get(models.FieldSubcat))
	addLine(&parts, "SKET Task", rec.Get(models.FieldSKETTask))
	addLine(&parts, "PO #", rec.Get(models.FieldPONumber))
	addLine(&parts, "Notes", rec.Get(models.FieldNotes))

	return models.TaskRecord{
		Name:        desc,
		Description: strings.Join(parts, "\n"),
		DueDate:     launchDate,
		Priority:    priority,
		Status:      models.StatusOpen,
		Tags:        t.tags(TagProductLaunch, rec.Get(models.FieldSport)),
		Assignee:    t.Assignee,
		Kind:        models.KindLaunch,
		Source:      models.Source{Sheet: rec.Sheet, Cell: rec.Cell},
	}, nil
}

// tags prefixes the brand and drops empty values.
func (t *Transformer) tags(values ...string) []string {
	tags := make([]string, 0, len(values)+1)
	for _, v := range append([]string{t.Brand}, values...) {
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

func addLine(parts *[]string, label, value string) {
	if value != "" {
		*parts = append(*parts, fmt.Sprintf("%s: %s", label, value))
	}
}
