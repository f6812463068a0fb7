package menu

import "strings"

// Key is a navigation key carried in callback data.
type Key string

const (
	KeyMain              Key = "main"
	KeyBack              Key = "back"
	KeySubscribed        Key = "subscribed"
	KeySubscribe         Key = "subscribe"
	KeySubscribeRetry    Key = "subscribe_retry"
	KeyCheckSubscription Key = "check_subscription"

	KeyCertificates   Key = "halal_cert_evidence"
	KeyCertSanitary   Key = "cert_sanitary"
	KeyCertVeterinary Key = "cert_veterinary"
	KeyCertHalal      Key = "cert_halal"

	KeyVideos       Key = "show_video"
	KeyVideoProcess Key = "video_process"
	KeyVideoCenters Key = "video_centers"

	KeyMeats Key = "meats"
	KeyAbout Key = "about"

	KeyContacts        Key = "contacts"
	KeyContactOffice   Key = "contact_office"
	KeyContactMarkets  Key = "contact_markets"
	KeyContactOperator Key = "contact_operator"
	KeyCallCenter      Key = "call-center"

	KeyNotFound Key = "not_found"
)

// ProductKeyPrefix prefixes product codes in product detail keys.
const ProductKeyPrefix = "meat_"

// ProductKey returns the navigation key of a product detail screen.
func ProductKey(code string) Key {
	return Key(ProductKeyPrefix + code)
}

// ProductCode extracts the product code from a product detail key.
func (k Key) ProductCode() (string, bool) {
	code, ok := strings.CutPrefix(string(k), ProductKeyPrefix)
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

func (k Key) String() string {
	return string(k)
}
