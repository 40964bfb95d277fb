package amocrm

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/promowebkz/deal-report-api/internal/config"
)

// ExportClient fetches the periodic deal export and converts it to
// tabular rows (header row first).
type ExportClient interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

type client struct {
	cfg        config.AmoCRM
	httpClient *http.Client
}

func NewClient(cfg config.AmoCRM) ExportClient {
	return &client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// FetchRows downloads the xlsx export from the configured URL and
// reads the first sheet (or the configured one) with excelize.
func (c *client) FetchRows(ctx context.Context) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ExportURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building the export request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "downloading the export file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("export download failed with status %d", resp.StatusCode)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "opening the export spreadsheet")
	}
	defer f.Close()

	sheet := c.cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}

	logrus.WithFields(logrus.Fields{
		"url":   c.cfg.ExportURL,
		"sheet": sheet,
		"rows":  len(rows),
	}).Info("Deal export downloaded")

	return rows, nil
}
