package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tradesim/stock_trading_app/internal/core/domain"
	"github.com/tradesim/stock_trading_app/internal/utils"
)

// PortfolioLineResponse is one held symbol. Price and value are omitted when
// the symbol could not be priced at read time; the share count is still shown.
type PortfolioLineResponse struct {
	Symbol      string           `json:"symbol"`
	CompanyName string           `json:"companyName"`
	Shares      int64            `json:"shares"`
	Priced      bool             `json:"priced"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PriceText   string           `json:"priceText,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	ValueText   string           `json:"valueText,omitempty"`
}

// PortfolioResponse is the projected account view: holdings, remaining cash
// and the grand total of cash plus priced positions.
type PortfolioResponse struct {
	Lines     []PortfolioLineResponse `json:"lines"`
	Cash      decimal.Decimal         `json:"cash"`
	CashText  string                  `json:"cashText"`
	Total     decimal.Decimal         `json:"total"`
	TotalText string                  `json:"totalText"`
}

// ToPortfolioResponse converts a domain.Portfolio to PortfolioResponse DTO.
func ToPortfolioResponse(p *domain.Portfolio) PortfolioResponse {
	lines := make([]PortfolioLineResponse, len(p.Lines))
	for i, line := range p.Lines {
		lr := PortfolioLineResponse{
			Symbol:      line.Symbol,
			CompanyName: line.CompanyName,
			Shares:      line.Shares,
			Priced:      line.Priced,
		}
		if line.Priced {
			price := line.Price
			value := line.Value
			lr.Price = &price
			lr.PriceText = utils.FormatUSD(price)
			lr.Value = &value
			lr.ValueText = utils.FormatUSD(value)
		}
		lines[i] = lr
	}
	return PortfolioResponse{
		Lines:     lines,
		Cash:      p.Cash,
		CashText:  utils.FormatUSD(p.Cash),
		Total:     p.Total,
		TotalText: utils.FormatUSD(p.Total),
	}
}
