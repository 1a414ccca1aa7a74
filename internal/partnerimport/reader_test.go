package partnerimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sitediary/internal/partnerimport"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead_GreekHeaders(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Λίστα συνεργατών"},
		{"Επωνυμία", "Επώνυμο", "Όνομα", "Ειδικότητα", "Κινητό", "Σχόλια"},
		{"Αιγαίου ΑΕ", "Παπαδάκης", "Γιώργος", "Ηλεκτρολογικά", "6941234567", "x"},
		{},
		{"", "Μόνο επώνυμο"},
	})

	records, err := partnerimport.Read(buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, "Αιγαίου ΑΕ", first.Get(partnerimport.ColCompany))
	assert.Equal(t, "Παπαδάκης", first.Get(partnerimport.ColLastName))
	assert.Equal(t, "Γιώργος", first.Get(partnerimport.ColFirstName))
	assert.Equal(t, "6941234567", first.Get(partnerimport.ColPhoneCell))
	assert.Len(t, first.Values, 5)

	assert.Equal(t, 5, records[1].Line)
	assert.Empty(t, records[1].Get(partnerimport.ColCompany))
}

func TestRead_EnglishHeaders(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Company", "Email", "Phone", "Address"},
		{" ACME LTD ", "info@acme.gr", "2101234567", "Ermou 5"},
	})

	records, err := partnerimport.Read(buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ACME LTD", records[0].Get(partnerimport.ColCompany))
	assert.Equal(t, "2101234567", records[0].Get(partnerimport.ColPhoneBusiness))
}

func TestRead_NoHeader(t *testing.T) {
	buf := workbook(t, [][]interface{}{{"foo", "bar"}, {"1", "2"}})

	_, err := partnerimport.Read(buf)
	assert.ErrorIs(t, err, partnerimport.ErrNoHeader)
}

func TestRead_NotAWorkbook(t *testing.T) {
	_, err := partnerimport.Read(strings.NewReader("company,email\n"))
	assert.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "επωνυμια", partnerimport.NormalizeHeader("  ΕΠΩΝΥΜΊΑ "))
	assert.Equal(t, "google maps url", partnerimport.NormalizeHeader("Google   Maps URL"))
}
