package domain

// Static currency registry, keyed by alphabetic code and by ISO numeric
// code. Extend by adding rows here; both lookup maps are derived from the
// same table.
var currencyTable = []struct {
	name       string
	code       string
	number     int
	minorUnits int
	countries  []string
}{
	{"US Dollar", "USD", 840, 2, []string{"United States of America"}},
	{"Euro", "EUR", 978, 2, []string{"Austria", "Belgium", "Finland", "France", "Germany", "Greece", "Ireland", "Italy", "Netherlands", "Portugal", "Spain"}},
	{"Pound Sterling", "GBP", 826, 2, []string{"United Kingdom"}},
	{"Yen", "JPY", 392, 0, []string{"Japan"}},
	{"Swiss Franc", "CHF", 756, 2, []string{"Switzerland", "Liechtenstein"}},
	{"Russian Ruble", "RUB", 643, 2, []string{"Russian Federation"}},
	{"Yuan Renminbi", "CNY", 156, 2, []string{"China"}},
	{"Indian Rupee", "INR", 356, 2, []string{"India"}},
	{"Australian Dollar", "AUD", 36, 2, []string{"Australia"}},
	{"Canadian Dollar", "CAD", 124, 2, []string{"Canada"}},
	{"Brazilian Real", "BRL", 986, 2, []string{"Brazil"}},
	{"Rand", "ZAR", 710, 2, []string{"South Africa"}},
	{"Won", "KRW", 410, 0, []string{"Republic of Korea"}},
	{"Swedish Krona", "SEK", 752, 2, []string{"Sweden"}},
	{"Norwegian Krone", "NOK", 578, 2, []string{"Norway"}},
	{"Danish Krone", "DKK", 208, 2, []string{"Denmark"}},
	{"Zloty", "PLN", 985, 2, []string{"Poland"}},
	{"Turkish Lira", "TRY", 949, 2, []string{"Turkey"}},
	{"Tunisian Dinar", "TND", 788, 3, []string{"Tunisia"}},
	{"Bahraini Dinar", "BHD", 48, 3, []string{"Bahrain"}},
	{"Kuwaiti Dinar", "KWD", 414, 3, []string{"Kuwait"}},
	{"Rial Omani", "OMR", 512, 3, []string{"Oman"}},
	{"UAE Dirham", "AED", 784, 2, []string{"United Arab Emirates"}},
	{"Saudi Riyal", "SAR", 682, 2, []string{"Saudi Arabia"}},
	{"Egyptian Pound", "EGP", 818, 2, []string{"Egypt"}},
	{"Naira", "NGN", 566, 2, []string{"Nigeria"}},
	{"Mexican Peso", "MXN", 484, 2, []string{"Mexico"}},
	{"Singapore Dollar", "SGD", 702, 2, []string{"Singapore"}},
	{"Hong Kong Dollar", "HKD", 344, 2, []string{"Hong Kong"}},
	{"New Zealand Dollar", "NZD", 554, 2, []string{"New Zealand"}},
}

var (
	currencyByCode   = make(map[string]Currency, len(currencyTable))
	currencyByNumber = make(map[int]Currency, len(currencyTable))
)

func init() {
	for _, row := range currencyTable {
		c, err := NewCurrency(row.name, row.code, row.number, row.minorUnits, row.countries...)
		if err != nil {
			panic(err)
		}
		currencyByCode[c.Code] = c
		currencyByNumber[c.Number] = c
	}
}
