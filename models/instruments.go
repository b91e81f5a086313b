package models

// Instrument is one entry of the curated reference list of tradable
// instrument names offered as search shortcuts in the UI.
type Instrument struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// Suggestions are the quick-select query strings shown under the search box.
// They go through the same resolver as free-text input.
var Suggestions = []string{
	"Türk Hava Yolları", "Gram Altın", "Bitcoin", "Aselsan", "USD/TRY", "Tesla",
}

// Instruments is the curated list of commodities and BIST stocks.
var Instruments = []Instrument{
	{Symbol: "ALTIN.S1", Name: "Gram Altın", Sector: "Emtia"},
	{Symbol: "GUMUS.S1", Name: "Gram Gümüş", Sector: "Emtia"},
	{Symbol: "THYAO", Name: "Türk Hava Yolları", Sector: "Ulaştırma"},
	{Symbol: "GARAN", Name: "Garanti BBVA", Sector: "Bankacılık"},
	{Symbol: "AKBNK", Name: "Akbank", Sector: "Bankacılık"},
	{Symbol: "ISCTR", Name: "İş Bankası (C)", Sector: "Bankacılık"},
	{Symbol: "YKBNK", Name: "Yapı Kredi", Sector: "Bankacılık"},
	{Symbol: "ASELS", Name: "Aselsan", Sector: "Savunma"},
	{Symbol: "KCHOL", Name: "Koç Holding", Sector: "Holding"},
	{Symbol: "SAHOL", Name: "Sabancı Holding", Sector: "Holding"},
	{Symbol: "EREGL", Name: "Ereğli Demir Çelik", Sector: "Sanayi"},
	{Symbol: "KRDMD", Name: "Kardemir (D)", Sector: "Sanayi"},
	{Symbol: "SISE", Name: "Şişecam", Sector: "Sanayi"},
	{Symbol: "TUPRS", Name: "Tüpraş", Sector: "Petrol & Kimya"},
	{Symbol: "PETKM", Name: "Petkim", Sector: "Petrol & Kimya"},
	{Symbol: "BIMAS", Name: "BİM Mağazalar", Sector: "Perakende"},
	{Symbol: "MGROS", Name: "Migros", Sector: "Perakende"},
	{Symbol: "SOKM", Name: "Şok Marketler", Sector: "Perakende"},
	{Symbol: "TOASO", Name: "Tofaş Oto", Sector: "Otomotiv"},
	{Symbol: "FROTO", Name: "Ford Otosan", Sector: "Otomotiv"},
	{Symbol: "TTKOM", Name: "Türk Telekom", Sector: "İletişim"},
	{Symbol: "TCELL", Name: "Turkcell", Sector: "İletişim"},
	{Symbol: "ENKAI", Name: "Enka İnşaat", Sector: "İnşaat"},
	{Symbol: "VESTL", Name: "Vestel", Sector: "Teknoloji"},
	{Symbol: "ARCLK", Name: "Arçelik", Sector: "Dayanıklı Tüketim"},
	{Symbol: "KOZAL", Name: "Koza Altın", Sector: "Madencilik"},
	{Symbol: "KOZAA", Name: "Koza Anadolu", Sector: "Madencilik"},
	{Symbol: "IPEKE", Name: "İpek Doğal Enerji", Sector: "Enerji"},
	{Symbol: "ASTOR", Name: "Astor Enerji", Sector: "Enerji"},
	{Symbol: "EUPWR", Name: "Europower Enerji", Sector: "Enerji"},
	{Symbol: "SASA", Name: "Sasa Polyester", Sector: "Kimya"},
	{Symbol: "HEKTS", Name: "Hektaş", Sector: "Tarım & Kimya"},
}
