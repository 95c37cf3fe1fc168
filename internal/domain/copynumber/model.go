package copynumber

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portal/portal/internal/domain/moleculardata"
)

// CNA is a discrete copy number call as stored in cna_event.alteration.
type CNA int

const (
	HomDel  CNA = -2
	HetLoss CNA = -1
	Diploid CNA = 0
	Gain    CNA = 1
	Amp     CNA = 2
)

var ErrInvalidCNA = errors.New("invalid copy number alteration")

var cnaNames = map[CNA]string{
	HomDel:  "HOMDEL",
	HetLoss: "HETLOSS",
	Diploid: "DIPLOID",
	Gain:    "GAIN",
	Amp:     "AMP",
}

func (c CNA) String() string {
	if name, ok := cnaNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CNA(%d)", int(c))
}

func ParseCNA(s string) (CNA, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for code, name := range cnaNames {
		if name == upper {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCNA, s)
}

func (c CNA) MarshalText() ([]byte, error) {
	if _, ok := cnaNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCNA, int(c))
	}
	return []byte(c.String()), nil
}

func (c *CNA) UnmarshalText(b []byte) error {
	parsed, err := ParseCNA(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DiscreteCopyNumberData is one sample's copy number call for one gene.
type DiscreteCopyNumberData struct {
	MolecularProfileID          string              `json:"molecularProfileId"`
	SampleID                    string              `json:"sampleId"`
	PatientID                   string              `json:"patientId"`
	StudyID                     string              `json:"studyId"`
	EntrezGeneID                int                 `json:"entrezGeneId"`
	Alteration                  int                 `json:"alteration"`
	DriverFilter                *string             `json:"driverFilter,omitempty"`
	DriverFilterAnnotation      *string             `json:"driverFilterAnnotation,omitempty"`
	DriverTiersFilter           *string             `json:"driverTiersFilter,omitempty"`
	DriverTiersFilterAnnotation *string             `json:"driverTiersFilterAnnotation,omitempty"`
	AnnotationJSON              *string             `json:"namespaceColumns,omitempty"`
	Gene                        *moleculardata.Gene `json:"gene,omitempty"`
}

type BaseMeta struct {
	TotalCount int `json:"totalCount"`
}

// GeneFilterQuery selects the alterations of one gene, optionally narrowed by
// driver annotation.
type GeneFilterQuery struct {
	EntrezGeneID               int      `json:"entrezGeneId"`
	HugoGeneSymbol             string   `json:"hugoGeneSymbol,omitempty"`
	Alterations                []CNA    `json:"alterations"`
	IncludeDriver              bool     `json:"includeDriver"`
	IncludeVUS                 bool     `json:"includeVUS"`
	IncludeUnknownOncogenicity bool     `json:"includeUnknownOncogenicity"`
	SelectedTiers              []string `json:"selectedTiers,omitempty"`
	IncludeUnknownTier         bool     `json:"includeUnknownTier"`
}

func (q GeneFilterQuery) hasAlteration(alteration int) bool {
	for _, a := range q.Alterations {
		if int(a) == alteration {
			return true
		}
	}
	return false
}

// admitsDriver applies the driver flags. A query with every flag off and no
// tiers selected places no restriction on annotation.
func (q GeneFilterQuery) admitsDriver(d *DiscreteCopyNumberData) bool {
	if !q.IncludeDriver && !q.IncludeVUS && !q.IncludeUnknownOncogenicity && len(q.SelectedTiers) == 0 && !q.IncludeUnknownTier {
		return true
	}
	driver := ""
	if d.DriverFilter != nil {
		driver = *d.DriverFilter
	}
	switch driver {
	case "Putative_Driver":
		if !q.IncludeDriver {
			return false
		}
	case "Putative_Passenger":
		if !q.IncludeVUS {
			return false
		}
	default:
		if !q.IncludeUnknownOncogenicity {
			return false
		}
	}
	if len(q.SelectedTiers) == 0 && !q.IncludeUnknownTier {
		return true
	}
	if d.DriverTiersFilter == nil || *d.DriverTiersFilter == "" {
		return q.IncludeUnknownTier
	}
	for _, tier := range q.SelectedTiers {
		if tier == *d.DriverTiersFilter {
			return true
		}
	}
	return false
}

// DiscreteCopyNumberEventType names the alteration sets accepted by the
// discrete copy number endpoints.
type DiscreteCopyNumberEventType string

const (
	EventHomDelAndAmp DiscreteCopyNumberEventType = "HOMDEL_AND_AMP"
	EventHomDel       DiscreteCopyNumberEventType = "HOMDEL"
	EventAmp          DiscreteCopyNumberEventType = "AMP"
	EventGain         DiscreteCopyNumberEventType = "GAIN"
	EventHetLoss      DiscreteCopyNumberEventType = "HETLOSS"
	EventDiploid      DiscreteCopyNumberEventType = "DIPLOID"
	EventAll          DiscreteCopyNumberEventType = "ALL"
)

var eventAlterations = map[DiscreteCopyNumberEventType][]int{
	EventHomDelAndAmp: {int(HomDel), int(Amp)},
	EventHomDel:       {int(HomDel)},
	EventAmp:          {int(Amp)},
	EventGain:         {int(Gain)},
	EventHetLoss:      {int(HetLoss)},
	EventDiploid:      {int(Diploid)},
	EventAll:          {int(HomDel), int(HetLoss), int(Diploid), int(Gain), int(Amp)},
}

// ParseEventType returns HOMDEL_AND_AMP for an empty string.
func ParseEventType(s string) (DiscreteCopyNumberEventType, error) {
	if s == "" {
		return EventHomDelAndAmp, nil
	}
	t := DiscreteCopyNumberEventType(strings.ToUpper(s))
	if _, ok := eventAlterations[t]; !ok {
		return "", fmt.Errorf("invalid discrete copy number event type: %s", s)
	}
	return t, nil
}

func (t DiscreteCopyNumberEventType) Alterations() []int {
	return append([]int(nil), eventAlterations[t]...)
}

// isHomdelOrAmpOnly reports whether the CNA event store alone can answer for
// these alterations. It only records HOMDEL and AMP events.
func isHomdelOrAmpOnly(alterations []int) bool {
	for _, a := range alterations {
		if a != int(HomDel) && a != int(Amp) {
			return false
		}
	}
	return true
}
