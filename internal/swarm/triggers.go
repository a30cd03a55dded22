package swarm

import (
	"fmt"

	"github.com/adhocore/gronx"
)

// TriggerType is the category of an event trigger.
type TriggerType string

const (
	TriggerProspectAction TriggerType = "prospect_action"
	TriggerLifeEvent      TriggerType = "life_event"
	TriggerBusinessEvent  TriggerType = "business_event"
	TriggerTimeBased      TriggerType = "time_based"
	TriggerDataChange     TriggerType = "data_change"
	TriggerCustom         TriggerType = "custom"
)

// EventTrigger is a declarative rule that should activate a swarm in the
// external system. Conditions are an open key-value map interpreted by
// the backend.
type EventTrigger struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       TriggerType    `json:"type"`
	SubType    string         `json:"subType"`
	Conditions map[string]any `json:"conditions"`
	Enabled    bool           `json:"enabled"`
}

// triggerSubTypes is the fixed vocabulary per category. Custom triggers
// accept any subtype.
var triggerSubTypes = map[TriggerType][]string{
	TriggerProspectAction: {
		"form_submitted", "email_opened", "link_clicked", "page_visited",
		"document_downloaded", "meeting_scheduled", "chat_initiated",
	},
	TriggerLifeEvent: {
		"marriage", "new_baby", "home_purchase", "retirement",
		"job_change", "relocation",
	},
	TriggerBusinessEvent: {
		"funding_raised", "expansion", "acquisition", "new_product",
		"leadership_change", "ipo",
	},
	TriggerTimeBased: {
		"anniversary", "renewal_due", "contract_expiry", "follow_up_due",
		"birthday",
	},
	TriggerDataChange: {
		"score_increase", "status_change", "budget_updated",
		"contact_added", "engagement_spike",
	},
}

// SubTypesFor returns the subtype vocabulary for a category, nil for
// custom and unknown categories.
func SubTypesFor(t TriggerType) []string {
	return triggerSubTypes[t]
}

// Validate checks the trigger's category, subtype and conditions. For
// time-based triggers a "schedule" condition, when present, must be a
// valid cron expression.
func (t EventTrigger) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("trigger name is required")
	}

	if t.Type == TriggerCustom {
		if t.SubType == "" {
			return fmt.Errorf("custom trigger %q: subtype is required", t.Name)
		}
		return nil
	}

	vocab, ok := triggerSubTypes[t.Type]
	if !ok {
		return fmt.Errorf("trigger %q: unknown type %q", t.Name, t.Type)
	}

	found := false
	for _, s := range vocab {
		if s == t.SubType {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("trigger %q: subtype %q not valid for type %q", t.Name, t.SubType, t.Type)
	}

	if t.Type == TriggerTimeBased {
		if raw, ok := t.Conditions["schedule"]; ok {
			expr, ok := raw.(string)
			if !ok {
				return fmt.Errorf("trigger %q: schedule condition must be a string", t.Name)
			}
			if !gronx.New().IsValid(expr) {
				return fmt.Errorf("trigger %q: invalid cron expression: %s", t.Name, expr)
			}
		}
	}

	return nil
}
