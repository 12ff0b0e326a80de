// Package seed loads account datasets from XLSX, CSV, and YAML files for
// bulk import into a store. Rows keep their file order so later lookups can
// break full ties deterministically.
package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/comercial-bot/internal/account"
)

// column positions used when a file carries no recognizable header row.
const (
	colExecutive = 0
	colTradeName = 1
	colLegalName = 2
)

// ReadXLSX reads the first sheet of an XLSX workbook into accounts.
func ReadXLSX(path string) ([]account.Account, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "seed: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("seed: %s has no sheets", path)
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return fromRows(rows), nil
}

// ReadCSV reads a comma-separated file into accounts. With latin1 set the
// bytes are decoded as Windows-1252 first, which legacy exports from Excel
// tend to use for Spanish names.
func ReadCSV(path string, latin1 bool) ([]account.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "seed: open csv")
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = charmap.Windows1252.NewDecoder().Reader(f)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "seed: read csv row")
		}
		for i, field := range record {
			record[i] = strings.TrimSpace(field)
		}
		rows = append(rows, record)
	}

	return fromRows(rows), nil
}

// yamlAccount mirrors the wire field names so fixtures read the same as the
// HTTP payloads.
type yamlAccount struct {
	Executive string `yaml:"ejecutivo"`
	TradeName string `yaml:"nombre_fantasia"`
	LegalName string `yaml:"razon_social"`
}

// ReadYAML reads a YAML fixture, a plain list of accounts, into accounts.
func ReadYAML(path string) ([]account.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "seed: open yaml")
	}

	var entries []yamlAccount
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrap(err, "seed: parse yaml")
	}

	accounts := make([]account.Account, 0, len(entries))
	for _, e := range entries {
		acct := account.Account{
			Executive: strings.TrimSpace(e.Executive),
			TradeName: strings.TrimSpace(e.TradeName),
			LegalName: strings.TrimSpace(e.LegalName),
		}
		if acct.TradeName == "" && acct.LegalName == "" {
			continue
		}
		acct.ComputeKeys()
		accounts = append(accounts, acct)
	}

	return accounts, nil
}

// fromRows converts raw rows into accounts. The first row is treated as a
// header when any of the expected column names appear in it; otherwise the
// file is assumed headerless with the fixed executive/trade/legal layout.
func fromRows(rows [][]string) []account.Account {
	if len(rows) == 0 {
		return nil
	}

	execCol, tradeCol, legalCol := colExecutive, colTradeName, colLegalName
	start := 0
	if ec, tc, lc, ok := headerColumns(rows[0]); ok {
		execCol, tradeCol, legalCol = ec, tc, lc
		start = 1
	}

	var accounts []account.Account
	for _, row := range rows[start:] {
		acct := account.Account{
			Executive: cellAt(row, execCol),
			TradeName: cellAt(row, tradeCol),
			LegalName: cellAt(row, legalCol),
		}
		if acct.TradeName == "" && acct.LegalName == "" {
			continue
		}
		acct.ComputeKeys()
		accounts = append(accounts, acct)
	}

	return accounts
}

// headerColumns matches column names case-insensitively and tolerates the
// spaced spellings legacy spreadsheets use.
func headerColumns(header []string) (execCol, tradeCol, legalCol int, ok bool) {
	execCol, tradeCol, legalCol = -1, -1, -1
	for i, name := range header {
		switch normalizeHeader(name) {
		case "ejecutivo", "comercial":
			execCol = i
		case "nombre_fantasia", "fantasia", "marca":
			tradeCol = i
		case "razon_social":
			legalCol = i
		}
	}
	if execCol < 0 && tradeCol < 0 && legalCol < 0 {
		return 0, 0, 0, false
	}
	if execCol < 0 {
		execCol = colExecutive
	}
	if tradeCol < 0 {
		tradeCol = colTradeName
	}
	if legalCol < 0 {
		legalCol = colLegalName
	}
	return execCol, tradeCol, legalCol, true
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "ó", "o")
	return s
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
