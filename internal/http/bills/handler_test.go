package bills_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/datafile"
	billyhttp "github.com/MrJamesThe3rd/billy/internal/http"
	"github.com/MrJamesThe3rd/billy/internal/http/bills"
	"github.com/MrJamesThe3rd/billy/internal/http/importcsv"
	"github.com/MrJamesThe3rd/billy/internal/importer"
)

func newServer(t *testing.T) (*httptest.Server, *datafile.Store) {
	t.Helper()

	data := datafile.New(filepath.Join(t.TempDir(), "bills.json"))
	router := billyhttp.New(
		bills.NewHandler(data),
		importcsv.NewHandler(importer.NewService(), data),
	)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return ts, data
}

func TestGetBills_InitializesEmpty(t *testing.T) {
	ts, _ := newServer(t)

	resp, err := http.Get(ts.URL + "/api/bills")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Bills []bill.Bill `json:"bills"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Empty(t, doc.Bills)
}

func TestSaveThenGet(t *testing.T) {
	ts, _ := newServer(t)

	body := `{"bills":[
		{"id":"1","name":"Rent","amount":1200,"date":"2025-05-01","category":"Housing","isPaid":false},
		{"id":"2","name":"Internet","amount":60,"date":"2025-05-10","category":"Utilities","isPaid":true}
	]}`

	resp, err := http.Post(ts.URL+"/api/bills", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/bills")
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc struct {
		Bills []bill.Bill `json:"bills"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Len(t, doc.Bills, 2)
	assert.Equal(t, "Rent", doc.Bills[0].Name)
}

func TestSave_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing bills key", body: `{"other": []}`},
		{name: "bills not an array", body: `{"bills": "nope"}`},
		{name: "not json", body: `bills=1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newServer(t)

			resp, err := http.Post(ts.URL+"/api/bills", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSave_EmptyArrayReplacesCollection(t *testing.T) {
	ts, data := newServer(t)

	require.NoError(t, data.Write([]bill.Bill{{ID: "1", Name: "Rent"}}))

	resp, err := http.Post(ts.URL+"/api/bills", "application/json", strings.NewReader(`{"bills":[]}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := data.Read()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestAnalytics(t *testing.T) {
	ts, data := newServer(t)

	require.NoError(t, data.Write([]bill.Bill{
		{ID: "1", Name: "Rent", Amount: 1200, Date: "2025-05-01", Category: "Housing"},
		{ID: "2", Name: "Electric", Amount: 85.5, Date: "2025-04-28", Category: "Utilities"},
		{ID: "3", Name: "Water", Amount: 30, Date: "2025-05-05", Category: "Utilities"},
	}))

	resp, err := http.Get(ts.URL + "/api/bills/analytics/categories")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var categories []bill.CategoryTotal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	require.Len(t, categories, 2)
	assert.Equal(t, "Housing", categories[0].Category)
	assert.InDelta(t, 115.5, categories[1].Amount, 0.001)

	resp, err = http.Get(ts.URL + "/api/bills/analytics/monthly")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var monthly []bill.MonthTotal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&monthly))
	require.Len(t, monthly, 2)
	assert.Equal(t, "Apr 2025", monthly[0].Month)
	assert.Equal(t, "May 2025", monthly[1].Month)
	assert.InDelta(t, 1230, monthly[1].Amount, 0.001)
}
