package menu

import "context"

// node describes one screen of the menu graph. Static nodes are described by data;
// dynamic ones supply render, which receives its own node so it never reads graph.
type node struct {
	text     string
	html     bool
	media    *Media
	rows     [][]Key
	back     Key
	parent   Key
	delivery Delivery
	children []Key
	render   func(ctx context.Context, m *Machine, key Key, n node) Screen
}

var mainRows = [][]Key{
	{KeyCertificates, KeyVideos},
	{KeyAbout, KeyContacts},
	{KeyMeats},
}

// graph is the complete navigation table. Product detail keys are resolved by prefix.
var graph = map[Key]node{
	KeyMain:       {text: "welcome", html: true, rows: mainRows, delivery: DeliverySend},
	KeyBack:       {text: "menu.main", rows: mainRows},
	KeySubscribed: {text: "menu.subscribed", rows: mainRows},

	KeySubscribe:         {render: renderSubscribe, delivery: DeliverySend, children: []Key{KeyCheckSubscription}},
	KeySubscribeRetry:    {render: renderSubscribe, children: []Key{KeyCheckSubscription}},
	KeyCheckSubscription: {render: renderSubscribe, children: []Key{KeyCheckSubscription}},

	KeyCertificates: {
		text: "certificates.title",
		rows: [][]Key{{KeyCertSanitary}, {KeyCertVeterinary}, {KeyCertHalal}},
		back: KeyBack,
	},
	KeyCertSanitary:   {media: &Media{Kind: MediaPhoto, Path: "certificates/cert_sanitary.png"}, parent: KeyCertificates, delivery: DeliverySend},
	KeyCertVeterinary: {media: &Media{Kind: MediaPhoto, Path: "certificates/veterenar_cert.png"}, parent: KeyCertificates, delivery: DeliverySend},
	KeyCertHalal:      {media: &Media{Kind: MediaPhoto, Path: "certificates/halal_cert.png"}, parent: KeyCertificates, delivery: DeliverySend},

	KeyVideos: {
		text: "videos.title",
		rows: [][]Key{{KeyVideoProcess}, {KeyVideoCenters}},
		back: KeyBack,
	},
	KeyVideoProcess: {text: "videos.process_caption", media: &Media{Kind: MediaVideo, Path: "video/meat_processing.mp4"}, parent: KeyVideos, delivery: DeliverySend},
	KeyVideoCenters: {text: "videos.centers_caption", media: &Media{Kind: MediaVideo, Path: "video/second-video.mp4"}, parent: KeyVideos, delivery: DeliverySend},

	KeyMeats: {render: renderProducts, back: KeyBack},
	KeyAbout: {text: "about", back: KeyBack},

	KeyContacts: {
		text: "contacts.title",
		rows: [][]Key{{KeyContactOffice}, {KeyContactMarkets}, {KeyContactOperator}, {KeyCallCenter}},
		back: KeyBack,
	},
	KeyContactOffice:   {text: "contacts.office", html: true, back: KeyContacts},
	KeyContactMarkets:  {text: "contacts.markets", html: true, back: KeyContacts},
	KeyContactOperator: {text: "contacts.operator", html: true, back: KeyContacts},
	KeyCallCenter:      {text: "contacts.call_center", html: true, back: KeyContacts},

	KeyNotFound: {text: "screen.not_found", back: KeyBack},
}

// productNode serves every meat_<code> key.
var productNode = node{render: renderProduct, back: KeyMeats}

// resolve finds the node for key: exact match first, then the product prefix.
func resolve(key Key) (node, bool) {
	if n, ok := graph[key]; ok {
		return n, true
	}
	if _, ok := key.ProductCode(); ok {
		return productNode, true
	}
	return node{}, false
}

// edges lists every key a node can navigate to.
func (n node) edges() []Key {
	out := make([]Key, 0, len(n.children)+2)
	for _, row := range n.rows {
		out = append(out, row...)
	}
	out = append(out, n.children...)
	if n.back != "" {
		out = append(out, n.back)
	}
	if n.parent != "" {
		out = append(out, n.parent)
	}
	return out
}
