// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package violation

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// translatable marks an argument that is a catalog key itself.
type translatable string

// supported lists the languages with catalog entries, English first as the fallback.
var supported = []language.Tag{language.English, language.Dutch}

var matcher = language.NewMatcher(supported)

var dutch = map[string]string{
	msgUnprocessablePEM:        "Kan het certificaat niet verwerken. Alleen PEM-gecodeerde X.509-bestanden worden ondersteund.",
	msgUnprocessablePEMNamed:   "Kan certificaat %[1]q niet verwerken. Alleen PEM-gecodeerde X.509-bestanden worden ondersteund.",
	msgUnprocessableKey:        "Kan de privésleutel niet verwerken. Alleen PEM-gecodeerde sleutels worden ondersteund.",
	msgTooManyCAsProvided:      "Er zijn te veel CA's opgegeven. Maximaal %[1]s worden geaccepteerd.",
	msgMissingCAExtension:      "Certificaat met common-name %[1]q bevat niet de vereiste CA-extensie.",
	msgUnableToResolveParent:   "Kan de CA van certificaat %[1]q niet vinden.",
	msgCertificateHasExpired:   "Het certificaat is verlopen op %[1]s.",
	msgCertificateIsRevoked:    "Het certificaat met serienummer %[1]q is ingetrokken op %[2]s met reden: (%[3]s) %[4]s.",
	msgExpectedLeafCertificate: "Het certificaat met common-name %[1]q bevat een CA-extensie. Er werd een eindcertificaat verwacht.",
	msgGlobalWildcard:          "De certificaathost %[1]q bevat een ongeldig globaal wildcardpatroon.",
	msgPublicSuffixWildcard:    "De certificaathost %[1]q bevat een ongeldig wildcardpatroon voor het publieke achtervoegsel %[2]q.",
	msgWeakSignatureAlgorithm:  "Het certificaat is ondertekend met het zwakke algoritme %[1]q. Minimaal algoritme %[2]q wordt verwacht.",
	msgUnsupportedPurpose:      "Het certificaat ondersteunt het doel niet: %[1]s.",
	msgUnsupportedDomain:       "Het certificaat moet hostpatroon %[1]q ondersteunen. Alleen de volgende patronen worden ondersteund: %[2]s.",
	msgPublicKeyMismatch:       "De publieke sleutel van het certificaat komt niet overeen met de \"public-key\"-gegevens van de privésleutel.",
	msgCertificateMismatch:     "Het certificaat komt niet overeen met de opgegeven privésleutel.",
	msgKeyBitsTooLow:           "De sleutelgrootte van %[1]s bits is te laag. Minimaal %[2]s bits wordt verwacht.",

	"SSL client":        "SSL-client",
	"SSL server":        "SSL-server",
	"S/MIME signing":    "S/MIME-ondertekening",
	"S/MIME encryption": "S/MIME-versleuteling",

	"no specific reason was given":                                                       "er is geen specifieke reden opgegeven",
	"the private key associated with the certificate has been compromised":               "de privésleutel van het certificaat is gecompromitteerd",
	"the private key of the issuing CA has been compromised":                             "de privésleutel van de uitgevende CA is gecompromitteerd",
	"the subject is no longer affiliated with the organization named in the certificate": "de houder is niet langer verbonden aan de organisatie in het certificaat",
	"a replacement certificate has been issued":                                          "er is een vervangend certificaat uitgegeven",
	"the certificate is no longer needed for its purpose":                                "het certificaat is niet langer nodig voor het doel",
	"the certificate is currently on hold, try again later":                              "het certificaat is tijdelijk opgeschort, probeer het later opnieuw",
	"the certificate revocation was removed":                                             "de intrekking van het certificaat is opgeheven",
	"a privilege contained within the certificate has been withdrawn":                    "een recht uit het certificaat is ingetrokken",
	"the attribute authority has been compromised":                                       "de attribuutautoriteit is gecompromitteerd",
}

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range dutch {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := b.SetString(language.Dutch, key, msg); err != nil {
			panic(err)
		}
	}
	return b
}

// Supported returns the languages [Translate] can render.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// ParseLanguage parses a BCP 47 tag, falling back to English for malformed input.
func ParseLanguage(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// Translate renders the violation message in the closest supported language.
func Translate(v Violation, tag language.Tag) string {
	_, idx, _ := matcher.Match(tag)
	p := message.NewPrinter(supported[idx], message.Catalog(messages))

	key, args := v.format()
	for i, arg := range args {
		switch t := arg.(type) {
		case translatable:
			args[i] = p.Sprintf(string(t))
		case int:
			// The printer groups digits per locale, key sizes must stay plain.
			args[i] = strconv.Itoa(t)
		}
	}
	return p.Sprintf(key, args...)
}
