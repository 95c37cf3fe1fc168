package molecularprofile

// MolecularAlterationType is the assay family a profile belongs to.
type MolecularAlterationType string

const (
	MutationExtended     MolecularAlterationType = "MUTATION_EXTENDED"
	CopyNumberAlteration MolecularAlterationType = "COPY_NUMBER_ALTERATION"
	MRNAExpression       MolecularAlterationType = "MRNA_EXPRESSION"
	ProteinLevel         MolecularAlterationType = "PROTEIN_LEVEL"
	Methylation          MolecularAlterationType = "METHYLATION"
	StructuralVariant    MolecularAlterationType = "STRUCTURAL_VARIANT"
	GenericAssay         MolecularAlterationType = "GENERIC_ASSAY"
)

const (
	DatatypeDiscrete   = "DISCRETE"
	DatatypeContinuous = "CONTINUOUS"
	DatatypeLog2Value  = "LOG2-VALUE"
	DatatypeZScore     = "Z-SCORE"
	DatatypeMAF        = "MAF"
)

// MolecularProfile maps to the genetic_profile table.
type MolecularProfile struct {
	InternalID               int                     `db:"genetic_profile_id" json:"-"`
	MolecularProfileID       string                  `db:"stable_id" json:"molecularProfileId"`
	StudyID                  string                  `db:"cancer_study_identifier" json:"studyId"`
	MolecularAlterationType  MolecularAlterationType `db:"genetic_alteration_type" json:"molecularAlterationType"`
	Datatype                 string                  `db:"datatype" json:"datatype"`
	Name                     string                  `db:"name" json:"name"`
	Description              *string                 `db:"description" json:"description,omitempty"`
	ShowProfileInAnalysisTab bool                    `db:"show_profile_in_analysis_tab" json:"showProfileInAnalysisTab"`
}

// IsDiscreteCopyNumber reports whether the profile holds discrete CNA calls.
func (m *MolecularProfile) IsDiscreteCopyNumber() bool {
	return m.MolecularAlterationType == CopyNumberAlteration && m.Datatype == DatatypeDiscrete
}
