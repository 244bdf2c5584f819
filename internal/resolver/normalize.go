package resolver

import "strings"

// Provider names form a closed set; anything unknown falls back to the
// generic category rather than being rejected.
const (
	ProviderGenesys      = "genesys"
	ProviderTwilio       = "twilio"
	ProviderZendesk      = "zendesk"
	ProviderFreshdesk    = "freshdesk"
	ProviderHubspot      = "hubspot"
	ProviderSalesforce   = "salesforce"
	ProviderServiceTitan = "servicetitan"
	ProviderJobber       = "jobber"
	ProviderHousecallPro = "housecall_pro"
	ProviderWebhook      = "webhook"
)

const (
	CategoryTelephony    = "telephony"
	CategoryTicketing    = "ticketing"
	CategoryCRM          = "crm"
	CategoryFieldService = "field_service"
	CategoryGeneric      = "generic"
)

func KnownUseCase(value string) bool {
	switch NormalizeUseCase(value) {
	case UseCaseKnowledgeBase, UseCaseCallLogging, UseCaseJobLogging,
		UseCaseTicketCreation, UseCaseContactSync, UseCaseGeneral:
		return true
	}
	return false
}

func NormalizeUseCase(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "-", "_")
	v = strings.ReplaceAll(v, " ", "_")
	switch v {
	case "kb", "kb_import", "knowledge_base_import":
		return UseCaseKnowledgeBase
	case "calls", "call_log", "call_logs":
		return UseCaseCallLogging
	case "jobs", "job_log", "work_order", "work_order_logging":
		return UseCaseJobLogging
	case "tickets", "ticketing":
		return UseCaseTicketCreation
	case "contacts", "crm_sync":
		return UseCaseContactSync
	default:
		return v
	}
}

func NormalizeProvider(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "-", "_")
	v = strings.ReplaceAll(v, " ", "_")
	switch v {
	case "housecall", "housecallpro":
		return ProviderHousecallPro
	case "service_titan":
		return ProviderServiceTitan
	default:
		return v
	}
}

func NormalizeStatus(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ProviderCategory buckets a provider for display grouping. Direction and
// category never participate in resolution.
func ProviderCategory(provider string) string {
	switch NormalizeProvider(provider) {
	case ProviderGenesys, ProviderTwilio:
		return CategoryTelephony
	case ProviderZendesk, ProviderFreshdesk:
		return CategoryTicketing
	case ProviderHubspot, ProviderSalesforce:
		return CategoryCRM
	case ProviderServiceTitan, ProviderJobber, ProviderHousecallPro:
		return CategoryFieldService
	default:
		return CategoryGeneric
	}
}
