package quoting

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

// QuotationPDFGenerator genera la representación gráfica de una cotización.
type QuotationPDFGenerator interface {
	GenerateQuotationPDF(ctx context.Context, q *entity.Quotation) ([]byte, error)
}

// PDFUseCase genera el PDF de una cotización con la misma regla de acceso que GetByID.
type PDFUseCase struct {
	quotations *QuotationUseCase
	generator  QuotationPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(quotations *QuotationUseCase, generator QuotationPDFGenerator) *PDFUseCase {
	return &PDFUseCase{quotations: quotations, generator: generator}
}

// RenderPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *PDFUseCase) RenderPDF(ctx context.Context, actor entity.Actor, id string) (pdfBytes []byte, filename string, err error) {
	q, err := uc.quotations.load(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateQuotationPDF(ctx, q)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, q.QuoteNumber + ".pdf", nil
}
