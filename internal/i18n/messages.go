package i18n

import "golang.org/x/text/language"

// Message keys.
const (
	MsgSettings            = "Settings"
	MsgViewSettings        = "View WooCommerce Settings"
	MsgRequiresWooCommerce = "The WooCommerce Invoice Gateway extension requires that you have the WooCommerce core plugin installed and activated."
	MsgInstallWooCommerce  = "Install WooCommerce"
	MsgMethodTitle         = "Invoice Payments"
	MsgMethodDescription   = "Allows invoice payments. Sends an order email to the store admin who'll have to manually create and send an invoice to the customer."
	MsgAwaitingPayment     = "Awaiting invoice payment"
	MsgNotInvoiceOrder     = "This order is not paid by invoice."

	MsgDefaultTitle        = "Invoice Payment"
	MsgDefaultDescription  = "Thank you for your order. You'll be invoiced soon."
	MsgDefaultInstructions = "Your order will be processed upon receipt of payment."

	MsgFieldEnabled          = "Enable/Disable"
	MsgFieldEnabledLabel     = "Enable Invoice Payment"
	MsgFieldTitle            = "Title"
	MsgFieldDescription      = "Description"
	MsgFieldInstructions     = "Instructions"
	MsgFieldOrderStatus      = "Order Status"
	MsgFieldUserRoles        = "User Roles"
	MsgFieldShippingMethods  = "Enable for shipping methods"
	MsgFieldVirtual          = "Accept for virtual orders"
	MsgFieldVirtualLabel     = "Accept invoice if the order is virtual"
	MsgFieldTitleHelp        = "This controls the title which the user sees during checkout."
	MsgFieldDescriptionHelp  = "Payment method description that the customer will see on your checkout."
	MsgFieldInstructionsHelp = "Instructions that will be added to the thank you page and emails."
	MsgFieldOrderStatusHelp  = "Choose the order status that will be set after checkout."
	MsgFieldUserRolesHelp    = "Select the user roles which can pay by invoice. Leave blank for all roles."
	MsgFieldShippingHelp     = "If invoice is only available for certain methods, set it up here. Leave blank to enable for all methods."
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		MsgSettings:            "Einstellungen",
		MsgViewSettings:        "WooCommerce-Einstellungen anzeigen",
		MsgRequiresWooCommerce: "Die Erweiterung WooCommerce Invoice Gateway setzt voraus, dass das WooCommerce-Plugin installiert und aktiviert ist.",
		MsgInstallWooCommerce:  "WooCommerce installieren",
		MsgMethodTitle:         "Zahlung auf Rechnung",
		MsgAwaitingPayment:     "Warte auf Zahlung der Rechnung",
		MsgNotInvoiceOrder:     "Diese Bestellung wird nicht per Rechnung bezahlt.",
		MsgDefaultTitle:        "Rechnung",
		MsgDefaultDescription:  "Vielen Dank für Ihre Bestellung. Sie erhalten in Kürze eine Rechnung.",
		MsgDefaultInstructions: "Ihre Bestellung wird nach Zahlungseingang bearbeitet.",
		MsgFieldEnabled:        "Aktivieren/Deaktivieren",
		MsgFieldEnabledLabel:   "Zahlung auf Rechnung aktivieren",
		MsgFieldTitle:          "Titel",
		MsgFieldDescription:    "Beschreibung",
		MsgFieldInstructions:   "Anweisungen",
		MsgFieldOrderStatus:    "Bestellstatus",
		MsgFieldUserRoles:      "Benutzerrollen",
	},
	language.French: {
		MsgSettings:            "Réglages",
		MsgViewSettings:        "Voir les réglages WooCommerce",
		MsgRequiresWooCommerce: "L’extension WooCommerce Invoice Gateway nécessite que l’extension WooCommerce soit installée et activée.",
		MsgInstallWooCommerce:  "Installer WooCommerce",
		MsgMethodTitle:         "Paiement sur facture",
		MsgAwaitingPayment:     "En attente du paiement de la facture",
		MsgNotInvoiceOrder:     "Cette commande n’est pas payée sur facture.",
		MsgDefaultTitle:        "Paiement sur facture",
		MsgDefaultDescription:  "Merci pour votre commande. Vous recevrez bientôt une facture.",
		MsgDefaultInstructions: "Votre commande sera traitée à réception du paiement.",
		MsgFieldEnabled:        "Activer/Désactiver",
		MsgFieldTitle:          "Titre",
		MsgFieldDescription:    "Description",
		MsgFieldOrderStatus:    "État de la commande",
	},
	language.Dutch: {
		MsgSettings:            "Instellingen",
		MsgViewSettings:        "WooCommerce-instellingen bekijken",
		MsgRequiresWooCommerce: "De WooCommerce Invoice Gateway-extensie vereist dat de WooCommerce-plugin geïnstalleerd en geactiveerd is.",
		MsgInstallWooCommerce:  "WooCommerce installeren",
		MsgMethodTitle:         "Betalen op factuur",
		MsgAwaitingPayment:     "Wacht op betaling van de factuur",
		MsgDefaultTitle:        "Factuur",
		MsgDefaultDescription:  "Bedankt voor je bestelling. Je ontvangt binnenkort een factuur.",
		MsgDefaultInstructions: "Je bestelling wordt verwerkt zodra de betaling is ontvangen.",
		MsgFieldTitle:          "Titel",
		MsgFieldDescription:    "Beschrijving",
		MsgFieldOrderStatus:    "Bestelstatus",
	},
}
