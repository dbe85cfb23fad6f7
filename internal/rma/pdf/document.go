// Package pdf renders the printable RMA form handed to the customer.
package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	stderrors "rma-desk/internal/common/errors"
	"rma-desk/internal/rma"
)

type Renderer struct {
	outputDir string
}

func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir}
}

// Render writes rma-<number>.pdf into the output directory and returns the
// written path.
func (r *Renderer) Render(issued *rma.Issued) (string, error) {
	doc, err := build(issued).Generate()
	if err != nil {
		return "", stderrors.NewDocumentRenderFailedError(err)
	}

	path := filepath.Join(r.outputDir, fmt.Sprintf("rma-%d.pdf", issued.Number))
	if err := doc.Save(path); err != nil {
		return "", stderrors.NewDocumentRenderFailedError(err)
	}
	return path, nil
}

// Bytes renders the form without writing it anywhere.
func Bytes(issued *rma.Issued) ([]byte, error) {
	doc, err := build(issued).Generate()
	if err != nil {
		return nil, stderrors.NewDocumentRenderFailedError(err)
	}
	return doc.GetBytes(), nil
}

func build(issued *rma.Issued) core.Maroto {
	m := maroto.New(config.NewBuilder().Build())

	m.AddRow(14, text.NewCol(12,
		fmt.Sprintf("Return Merchandise Authorization RMA %d", issued.Number),
		props.Text{Size: 14, Style: fontstyle.Bold},
	))
	m.AddRow(8, text.NewCol(12, issued.IssuedAt.Format("2006-01-02"), props.Text{Size: 9}))

	field := func(label, value string) {
		if value == "" {
			return
		}
		m.AddRow(6,
			text.NewCol(4, label, props.Text{Style: fontstyle.Bold, Size: 10}),
			text.NewCol(8, value, props.Text{Size: 10}),
		)
	}

	field("Customer", issued.Contact.Name)
	field("Email", issued.Contact.Email)
	field("Phone", issued.Contact.Phone)
	field("Company", issued.Contact.Company)
	field("Street", issued.Contact.Street)
	field("City", issued.Contact.City)
	field("State", issued.Contact.State)
	field("Zip", issued.Contact.Zip)
	field("Country", issued.Contact.Country)
	field("Product", issued.Request.Product)
	field("Serial number", issued.Request.SerialNumber)
	field("Category", issued.Request.Category)
	field("Condition", issued.Request.Condition)
	field("Decontamination", issued.Request.Decontamination)
	field("Complaint", issued.Request.Complaint)
	field("Reply", issued.Request.Reply)
	field("Status", issued.Request.Status)

	return m
}
