// Package plier defines the boundary to the external PLIER matrix
// factorization: the prior-knowledge gene set matrix handed in alongside the
// expression matrix, and the decomposition results handed back. The
// factorization itself is an external collaborator; nothing here
// reimplements it.
package plier

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jaclyn-taroni/2023-mdibl-fair/exprmatrix"
	"gonum.org/v1/gonum/mat"
)

// Prior is the binary gene-set membership matrix: one row per prior
// knowledge gene set (pathway or cell type marker set), one column per gene
// symbol, cell 1 when the symbol belongs to the set.
type Prior struct {
	Sets    []string
	Symbols []string
	Dense   *mat.Dense
}

// ReadGMT parses gene sets in the GMT format (one set per line: name,
// description, then member symbols, tab-separated) into a Prior over the
// union of all member symbols, in first-seen order.
func ReadGMT(r io.Reader) (*Prior, error) {
	type set struct {
		name    string
		members []string
	}

	var sets []set
	symbolIndex := make(map[string]int)
	var symbols []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for i := 0; sc.Scan(); i++ {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("GMT line %d (%q): need a set name, a description, and at least one member", i+1, fields[0])
		}

		sets = append(sets, set{name: fields[0], members: fields[2:]})
		for _, symbol := range fields[2:] {
			if _, exists := symbolIndex[symbol]; !exists {
				symbolIndex[symbol] = len(symbols)
				symbols = append(symbols, symbol)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, pfx.Err(err)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no gene sets parsed")
	}

	p := &Prior{
		Sets:    make([]string, 0, len(sets)),
		Symbols: symbols,
		Dense:   mat.NewDense(len(sets), len(symbols), nil),
	}
	for i, s := range sets {
		p.Sets = append(p.Sets, s.name)
		for _, symbol := range s.members {
			p.Dense.Set(i, symbolIndex[symbol], 1)
		}
	}

	return p, nil
}

// Align restricts and reorders the Prior's symbol columns to match the row
// order of the expression matrix, dropping symbols the expression data does
// not cover. Factorization requires the two matrices to agree on gene
// order. An expression matrix sharing no symbols with the prior is an
// error.
func (p *Prior) Align(expr *exprmatrix.Matrix) (*Prior, error) {
	keep := make([]int, 0, len(expr.Rows))
	kept := make([]string, 0, len(expr.Rows))

	have := make(map[string]int, len(p.Symbols))
	for j, symbol := range p.Symbols {
		have[symbol] = j
	}

	for _, symbol := range expr.Rows {
		if j, exists := have[symbol]; exists {
			keep = append(keep, j)
			kept = append(kept, symbol)
		}
	}

	if len(keep) == 0 {
		return nil, fmt.Errorf("expression matrix shares no symbols with the prior")
	}

	aligned := &Prior{
		Sets:    p.Sets,
		Symbols: kept,
		Dense:   mat.NewDense(len(p.Sets), len(keep), nil),
	}
	for i := range p.Sets {
		for jj, j := range keep {
			aligned.Dense.Set(i, jj, p.Dense.At(i, j))
		}
	}

	return aligned, nil
}
