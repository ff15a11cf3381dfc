package content

import "github.com/CartagenesDev/cartagenes-finacias/internal/contracts"

// Fallback tips
const (
	// EmptyTip replaces a blank generated tip
	EmptyTip = "Diversifique sua carteira para reduzir riscos."
	// ErrorTip is served when generation fails
	ErrorTip = "Invista com consistência e foco no longo prazo."
)

// FallbackNews returns the fixed carousel served when generation fails
func FallbackNews() []contracts.NewsArticle {
	return []contracts.NewsArticle{
		{
			ID:       "1",
			Title:    "Ibovespa opera em alta com otimismo externo",
			Summary:  "Investidores reagem positivamente aos dados de inflação nos EUA. Dólar apresenta leve queda frente ao real.",
			Category: "MERCADO",
			ImageURL: "https://picsum.photos/seed/1/800/600",
		},
		{
			ID:       "2",
			Title:    "Petrobras anuncia novo plano de investimentos",
			Summary:  "Estatal foca em energias renováveis para o próximo quinquênio. Ações sobem 2% no pregão de hoje.",
			Category: "EMPRESAS",
			ImageURL: "https://picsum.photos/seed/2/800/600",
		},
		{
			ID:       "3",
			Title:    "Copom sinaliza manutenção da taxa Selic",
			Summary:  "Ata da última reunião indica cautela com o cenário fiscal. Analistas preveem estabilidade até o fim do ano.",
			Category: "ECONOMIA",
			ImageURL: "https://picsum.photos/seed/3/800/600",
		},
		{
			ID:       "4",
			Title:    "Dólar fecha em queda com fluxo estrangeiro",
			Summary:  "Entrada de capital externo impulsiona a moeda brasileira. Setor exportador monitora volatilidade.",
			Category: "MOEDAS",
			ImageURL: "https://picsum.photos/seed/4/800/600",
		},
		{
			ID:       "5",
			Title:    "Techs brasileiras ganham destaque global",
			Summary:  "Startups nacionais atraem investimentos de fundos do Vale do Silício. Setor de fintechs lidera rodadas.",
			Category: "TECNOLOGIA",
			ImageURL: "https://picsum.photos/seed/5/800/600",
		},
	}
}
