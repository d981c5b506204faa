// ABOUTME: Public types for the LinkMeta library
// ABOUTME: Aliases of the core result types so callers need only this package

package linkmeta

import "linkmeta-api/core/domain"

// Result is the extraction output for one page
type Result = domain.Result

// Other holds unrecognized meta values and the link list
type Other = domain.Other

// MetaRecord is one namespace, key and value triple of a result
type MetaRecord = domain.MetaRecord

// Link is a rel/href pair taken from a link element
type Link = domain.Link

// BatchItem is the outcome for one URL of a batch call
type BatchItem = domain.BatchItem

// ExtractOptions controls one extraction
type ExtractOptions = domain.Options

// Namespace names
const (
	NamespaceStandard = domain.NamespaceStandard
	NamespaceOG       = domain.NamespaceOG
	NamespaceTwitter  = domain.NamespaceTwitter
	NamespaceOther    = domain.NamespaceOther
)
