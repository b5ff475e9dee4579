package exprmatrix

import "fmt"

// Observation is one cell of a matrix in long format, annotated with the
// sample's categorical label from the metadata table. Plotting tools
// consume these rather than the wide matrix.
type Observation struct {
	Row    string
	Sample string
	Value  float64
	Label  string
}

// Melt reshapes the matrix into long format, one Observation per cell,
// attaching each sample's label from labels. Every sample column must be
// present in labels; a sample without metadata is an error rather than a
// silently unlabeled point.
func (m *Matrix) Melt(labels map[string]string) ([]Observation, error) {
	rows, cols := m.Dense.Dims()
	out := make([]Observation, 0, rows*cols)
	for j, sample := range m.Samples {
		label, exists := labels[sample]
		if !exists {
			return nil, fmt.Errorf("sample %q has no metadata label", sample)
		}

		for i := 0; i < rows; i++ {
			out = append(out, Observation{
				Row:    m.Rows[i],
				Sample: sample,
				Value:  m.Dense.At(i, j),
				Label:  label,
			})
		}
	}

	return out, nil
}

// MeltRow melts a single named row, typically one latent variable's values
// across all samples.
func (m *Matrix) MeltRow(label string, labels map[string]string) ([]Observation, error) {
	values, err := m.Row(label)
	if err != nil {
		return nil, err
	}

	out := make([]Observation, 0, len(values))
	for j, sample := range m.Samples {
		sampleLabel, exists := labels[sample]
		if !exists {
			return nil, fmt.Errorf("sample %q has no metadata label", sample)
		}

		out = append(out, Observation{
			Row:    label,
			Sample: sample,
			Value:  values[j],
			Label:  sampleLabel,
		})
	}

	return out, nil
}
