package rolecreds

import (
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/go-ini/ini"
)

func isValidARN(str string) bool {
	_, err := arn.Parse(str)
	return err == nil
}

// maskKeyID keeps the last four characters of an access key id, enough to
// tell sessions apart in logs.
func maskKeyID(id string) string {
	if len(id) <= 4 {
		return "****"
	}
	return "****" + id[len(id)-4:]
}

func setIniKeyValue(section *ini.Section, key string, value string) error {
	section.DeleteKey(key)
	_, err := section.NewKey(key, value)
	return err
}
