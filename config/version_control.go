package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executible
	Main_version = "v2.0.0"

	// Modular tools
	Benchmark     = "v1.0.0"
	Kmer_Analyzer = "v2.0.0" // Gapped descriptors under a reduction scheme
	DB_Overview   = "v3.0.0" // Formerly "FASTA_Overview"
	Build_Table   = "v1.0.0"
	Score         = "v1.0.0"
	IC50          = "v1.0.0"
	Optimize      = "v1.0.0"
	Seq_Generator = "v3.0.0" // Peptides only
	Serve         = "v0.1.0"
	Sanity_check  = "v1.0.0"
)
