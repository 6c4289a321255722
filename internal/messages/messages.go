package messages

// Catalog resolves localized user-facing texts. The web application owns the
// full message catalog; this service carries only the keys the payment flow
// needs.
type Catalog struct {
	locale  string
	entries map[string]map[string]string
}

// DefaultLocale is the fallback when a key has no entry for the configured
// locale.
const DefaultLocale = "de"

// KeyTransactionDescription labels the gateway-visible transaction text.
const KeyTransactionDescription = "checkout.transaction.description"

func NewCatalog(locale string) *Catalog {
	if locale == "" {
		locale = DefaultLocale
	}
	return &Catalog{
		locale: locale,
		entries: map[string]map[string]string{
			"de": {
				KeyTransactionDescription: "Kauf von Bildlizenzen auf der Fotoplattform",
			},
			"en": {
				KeyTransactionDescription: "Purchase of image licenses on the photo platform",
			},
		},
	}
}

// GetMessage returns the text for key in the configured locale, falling back
// to the default locale and finally to the key itself so a missing entry is
// visible instead of blank.
func (c *Catalog) GetMessage(key string) string {
	if msg, ok := c.entries[c.locale][key]; ok {
		return msg
	}
	if msg, ok := c.entries[DefaultLocale][key]; ok {
		return msg
	}
	return key
}
