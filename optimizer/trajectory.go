package optimizer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

var trajectoryHeaders = []string{
	"iteration", "peptide", "score", "helix_fraction", "charge",
	"hydrophobicity_spacing", "trial", "trial_score", "accepted",
}

// WriteTrajectory writes one CSV row per step, in iteration order
func WriteTrajectory(w io.Writer, steps []Step) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(trajectoryHeaders); err != nil {
		return err
	}
	for _, s := range steps {
		row := []string{
			strconv.Itoa(s.Iteration),
			s.Peptide,
			formatFloat(s.Score),
			formatFloat(s.HelixFraction),
			formatFloat(s.Charge),
			formatFloat(s.HydrophobicitySpacing),
			s.Trial,
			formatFloat(s.TrialScore),
			strconv.FormatBool(s.Accepted),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTrajectoryFile writes the trajectory CSV to path
func WriteTrajectoryFile(path string, steps []Step) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteTrajectory(f, steps); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// Summary condenses a trajectory
type Summary struct {
	Steps       int
	Accepted    int
	FirstScore  float64
	LastScore   float64
	MeanScore   float64
	StdDevScore float64
	MeanCharge  float64
	MeanHelix   float64
}

// Summarize computes score and property statistics over the steps
func Summarize(steps []Step) Summary {
	s := Summary{Steps: len(steps)}
	if len(steps) == 0 {
		return s
	}
	scores := make([]float64, len(steps))
	charges := make([]float64, len(steps))
	helix := make([]float64, len(steps))
	for i, st := range steps {
		scores[i] = st.Score
		charges[i] = st.Charge
		helix[i] = st.HelixFraction
		if st.Accepted {
			s.Accepted++
		}
	}
	s.FirstScore = scores[0]
	s.LastScore = scores[len(scores)-1]
	s.MeanScore, s.StdDevScore = stat.MeanStdDev(scores, nil)
	s.MeanCharge = stat.Mean(charges, nil)
	s.MeanHelix = stat.Mean(helix, nil)
	return s
}
