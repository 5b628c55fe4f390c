package neural_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNeural(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Neural Suite")
}
