package reconcile

// RecordType is the kind of compliance document a vehicle carries.
type RecordType string

const (
	RecordInsurance     RecordType = "insurance"
	RecordRegistration  RecordType = "registration"
	RecordSafetySticker RecordType = "safety_sticker"
)

var RecordTypes = []RecordType{RecordInsurance, RecordRegistration, RecordSafetySticker}

// ParseRecordType accepts safety_sticker, safety-sticker and SafetySticker alike.
// The boolean is false for anything outside the known set.
func ParseRecordType(raw string) (RecordType, bool) {
	key := compact(raw)

	for _, recordType := range RecordTypes {
		if compact(string(recordType)) == key {
			return recordType, true
		}
	}

	return "", false
}
