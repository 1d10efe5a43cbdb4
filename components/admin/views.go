package admin

import (
	"strconv"
)

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func cell(label, value string) map[string]any {
	return map[string]any{"label": label, "value": value}
}

func badge(label, class string) map[string]any {
	return map[string]any{"label": label, "class": class}
}

func categoryRow(c Category) map[string]any {
	created := "-"
	if c.CreatedAt != nil {
		created = FormatDateLong(*c.CreatedAt)
	}
	return map[string]any{
		"title": c.Name,
		"icon":  "folder",
		"cells": []map[string]any{
			cell("Deskripsi", dash(c.Description)),
			cell("Dibuat", created),
		},
	}
}

func channelRow(c Channel) map[string]any {
	return map[string]any{
		"title": c.Name,
		"icon":  ChannelIcon(c.Name),
		"cells": []map[string]any{
			cell("Deskripsi", dash(c.Description)),
			cell("Dibuat", FormatDateLong(c.CreatedAt)),
		},
	}
}

func userRow(u User) map[string]any {
	status := badge("Tidak aktif", "bg-gray-100 text-gray-700 border-gray-200")
	if UserActive(u) {
		status = badge("Aktif", "bg-emerald-100 text-emerald-700 border-emerald-200")
	}
	return map[string]any{
		"title":  u.Name,
		"icon":   "user",
		"badges": []map[string]any{status},
		"cells": []map[string]any{
			cell("Email", u.Email),
			cell("Telepon", u.Phone),
			cell("Dibuat", dash(formatOptionalDate(u.CreatedAt))),
		},
	}
}

func paymentRow(p PaymentMethod) map[string]any {
	updated := "-"
	if p.UpdatedAt != nil {
		updated = FormatDateTime(*p.UpdatedAt)
	}
	return map[string]any{
		"title":     p.Name,
		"image_url": p.ImageURL,
		"badges":    []map[string]any{badge(p.Provider, ProviderBadgeClass(p.Provider))},
		"cells": []map[string]any{
			cell("Dibuat", FormatDate(p.CreatedAt)),
			cell("Diperbarui", updated),
		},
	}
}

// templateRow flags references whose category or channel no longer
// resolves; the stored copy is still shown.
func templateRow(refs ReferenceLookup) func(Template) map[string]any {
	return func(t Template) map[string]any {
		categoryName, channelName := "-", "-"
		if t.Category != nil {
			categoryName = t.Category.Name
		}
		if t.Channel != nil {
			channelName = t.Channel.Name
		}
		_, categoryOK := refs.Category(t.CategoryID)
		_, channelOK := refs.Channel(t.ChannelID)
		style := ChannelStyle(channelName)
		badges := []map[string]any{
			badge(channelName, style.Class),
			badge(categoryName, "bg-slate-100 text-slate-700 border-slate-200"),
		}
		if t.HasAttachment {
			badges = append(badges, badge("Lampiran", "bg-amber-100 text-amber-700 border-amber-200"))
		}
		return map[string]any{
			"title":            t.TemplateName,
			"icon":             style.Icon,
			"badges":           badges,
			"dangling":         !categoryOK || !channelOK,
			"dangling_message": "Kategori atau channel sudah dihapus",
			"cells": []map[string]any{
				cell("Subjek", dash(t.Subject)),
				cell("Dibuat", FormatDateLong(t.CreatedAt)),
			},
		}
	}
}

func orderView(o Order, highlight string) map[string]any {
	style := StatusStyle(o.Status)
	return map[string]any{
		"order_id":        strconv.FormatInt(o.OrderID, 10),
		"kode_order":      o.KodeOrder,
		"va_name":         o.VAName,
		"virtual_account": o.VirtualAccount,
		"payment_method":  o.PaymentMethod,
		"tagihan":         FormatRupiah(o.Tagihan),
		"admin":           FormatRupiah(o.Admin),
		"total_amount":    FormatRupiah(o.TotalAmount),
		"status":          string(o.Status),
		"status_label":    style.Label,
		"status_class":    style.Class,
		"status_icon":     style.Icon,
		"contract_id":     dash(o.ContractID),
		"trx_id":          dash(o.TrxID),
		"expired_at":      FormatExpiry(o.ExpiredAt),
		"highlighted":     highlight != "" && highlight == o.KodeOrder,
	}
}

func feedView(items []FeedItem) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"id":             item.ID,
			"title":          item.Title,
			"time":           item.Time,
			"type":           string(item.Type),
			"icon":           item.Icon,
			"color_class":    item.ColorClass,
			"link":           item.Link,
			"kode_order":     item.KodeOrder,
			"va_name":        item.VAName,
			"total_amount":   FormatRupiah(item.TotalAmount),
			"payment_method": item.PaymentMethod,
		})
	}
	return out
}

func overviewView(ov Overview) map[string]any {
	stats := []map[string]any{
		{"label": "Total Kategori", "value": FormatNumber(int64(ov.Totals.Categories)), "icon": "folder", "link": "/categories"},
		{"label": "Total Channel", "value": FormatNumber(int64(ov.Totals.Channels)), "icon": "radio", "link": "/channels"},
		{"label": "Total Template", "value": FormatNumber(int64(ov.Totals.Templates)), "icon": "file-text", "link": "/templates"},
		{"label": "Metode Pembayaran", "value": FormatNumber(int64(ov.Totals.PaymentMethods)), "icon": "credit-card", "link": "/payments"},
		{"label": "Total User", "value": FormatNumber(int64(ov.Totals.Users)), "icon": "users", "link": "/users"},
		{"label": "Total Order", "value": FormatNumber(int64(ov.Totals.Orders)), "icon": "shopping-cart", "link": "/orders"},
		{"label": "User Aktif", "value": FormatNumber(int64(ov.Totals.UserActive)), "icon": "user-check"},
		{"label": "Customer Aktif", "value": FormatNumber(int64(ov.Totals.CustomerActive)), "icon": "smile"},
	}
	activity := make([]map[string]any, 0, len(ov.RecentActivity))
	for _, a := range ov.RecentActivity {
		activity = append(activity, map[string]any{"kind": a.Kind, "message": a.Message, "time": a.Time})
	}
	distribution := make([]map[string]any, 0, len(ov.ChannelDistribution))
	for _, d := range ov.ChannelDistribution {
		distribution = append(distribution, map[string]any{"name": d.Name, "templates": d.Templates})
	}
	return map[string]any{
		"key":          PageDashboard,
		"title":        "Dashboard",
		"subtitle":     "Ringkasan platform notifikasi",
		"stats":        stats,
		"activity":     activity,
		"distribution": distribution,
		"chart_html":   ov.ChartHTML,
		"last_updated": FormatDateTime(ov.LastUpdated),
	}
}

func textField[T any](name, label, kind, placeholder string, value func(T) string) fieldSpec[T] {
	return fieldSpec[T]{name: name, label: label, kind: kind, placeholder: placeholder, value: value}
}

func newPages(s *Service, actions PageActions) map[string]Page {
	markdown := s.RenderMarkdown
	pages := []Page{
		&overviewPage{service: s},
		&crudPage[Channel]{
			key:      PageChannels,
			title:    "Channels",
			subtitle: "Kelola channel pengiriman notifikasi",
			addLabel: "Tambah Channel",
			empty:    "Belum ada channel",
			coll:     s.Channels(),
			actions:  actionsOr(actions.Channels, s.Channels()),
			decode:   DecodeChannel,
			row:      channelRow,
			fields: []fieldSpec[Channel]{
				textField("name", "Nama Channel", "text", "Contoh: Email", func(c Channel) string { return c.Name }),
				textField("description", "Deskripsi", "textarea", "Deskripsi channel", func(c Channel) string { return c.Description }),
			},
		},
		&crudPage[PaymentMethod]{
			key:      PagePayments,
			title:    "Metode Pembayaran",
			subtitle: "Kelola metode pembayaran yang tersedia",
			addLabel: "Tambah Metode",
			empty:    "Belum ada metode pembayaran",
			coll:     s.Payments(),
			actions:  actionsOr(actions.Payments, s.Payments()),
			decode:   DecodePayment,
			row:      paymentRow,
			fields: []fieldSpec[PaymentMethod]{
				textField("name", "Nama", "text", "BCA Virtual Account", func(p PaymentMethod) string { return p.Name }),
				textField("provider", "Provider", "text", "SparkPay", func(p PaymentMethod) string { return p.Provider }),
				textField("image_url", "URL Gambar", "url", "https://", func(p PaymentMethod) string { return p.ImageURL }),
			},
		},
		&crudPage[Category]{
			key:      PageCategories,
			title:    "Categories",
			subtitle: "Kelola kategori template notifikasi",
			addLabel: "Tambah Kategori",
			empty:    "Belum ada kategori",
			coll:     s.Categories(),
			actions:  actionsOr(actions.Categories, s.Categories()),
			decode:   DecodeCategory,
			row:      categoryRow,
			fields: []fieldSpec[Category]{
				textField("name", "Nama Kategori", "text", "Contoh: Transaksi", func(c Category) string { return c.Name }),
				textField("description", "Deskripsi", "textarea", "Opsional", func(c Category) string { return c.Description }),
			},
		},
		&crudPage[Template]{
			key:      PageTemplates,
			title:    "Templates",
			subtitle: "Kelola template pesan notifikasi",
			addLabel: "Tambah Template",
			empty:    "Belum ada template",
			coll:     s.Templates(),
			actions:  actionsOr(actions.Templates, s.Templates()),
			decode:   DecodeTemplate,
			row:      templateRow(s),
			body:     func(t Template) string { return t.Body },
			markdown: markdown,
			fields: []fieldSpec[Template]{
				textField("template_name", "Nama Template", "text", "", func(t Template) string { return t.TemplateName }),
				{name: "category_id", label: "Kategori", kind: "select", value: func(t Template) string { return t.CategoryID.String() }, options: s.CategoryOptions},
				{name: "channel_id", label: "Channel", kind: "select", value: func(t Template) string { return t.ChannelID.String() }, options: s.ChannelOptions},
				textField("subject", "Subjek", "text", "", func(t Template) string { return t.Subject }),
				textField("body", "Isi (Markdown)", "textarea", "**tebal**, *miring*, `kode`", func(t Template) string { return t.Body }),
				textField("has_attachment", "Memiliki lampiran", "checkbox", "", func(t Template) string { return strconv.FormatBool(t.HasAttachment) }),
			},
		},
		&crudPage[User]{
			key:      PageUsers,
			title:    "Users",
			subtitle: "Kelola pengguna platform",
			addLabel: "Tambah User",
			empty:    "Belum ada user",
			coll:     s.Users(),
			actions:  actionsOr(actions.Users, s.Users()),
			decode:   DecodeUser,
			row:      userRow,
			fields: []fieldSpec[User]{
				textField("name", "Nama", "text", "", func(u User) string { return u.Name }),
				textField("email", "Email", "email", "nama@contoh.com", func(u User) string { return u.Email }),
				textField("phone", "Nomor Telepon", "tel", "+62...", func(u User) string { return u.Phone }),
			},
		},
		&ordersPage{ledger: s.Orders()},
	}
	out := make(map[string]Page, len(pages))
	for _, p := range pages {
		out[p.Key()] = p
	}
	return out
}
