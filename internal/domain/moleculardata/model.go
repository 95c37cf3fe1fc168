package moleculardata

// Gene maps to the gene table.
type Gene struct {
	EntrezGeneID   int    `db:"entrez_gene_id" json:"entrezGeneId"`
	HugoGeneSymbol string `db:"hugo_gene_symbol" json:"hugoGeneSymbol"`
	Type           string `db:"type" json:"type,omitempty"`
}

// GeneMolecularData is a single (sample, gene) value of a molecular profile.
// Value is kept as stored; discrete profiles hold integer calls.
type GeneMolecularData struct {
	MolecularProfileID string `json:"molecularProfileId"`
	SampleID           string `json:"sampleId"`
	PatientID          string `json:"patientId"`
	StudyID            string `json:"studyId"`
	EntrezGeneID       int    `json:"entrezGeneId"`
	Value              string `json:"value"`
	Gene               *Gene  `json:"gene,omitempty"`
}

// GeneMolecularAlteration is one genetic_alteration row: the values of one
// gene for every sample of a profile, comma separated in profile sample order.
type GeneMolecularAlteration struct {
	EntrezGeneID int
	Values       string
	Gene         *Gene
}

// Sample identifies a stored sample by internal id.
type Sample struct {
	InternalID int    `db:"internal_id"`
	SampleID   string `db:"stable_id"`
	PatientID  string `db:"patient_stable_id"`
	StudyID    string `db:"cancer_study_identifier"`
}
