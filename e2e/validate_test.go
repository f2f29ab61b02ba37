package e2e_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("rig validate", func() {
	It("accepts a valid config", func() {
		dir := tempDir()
		writeConfig(dir, `queues:
  - name: any

jobs:
  - name: unit
    queue: any
    command: go
    args: ["test", "./..."]
`)
		Expect(rigOK(dir, "validate")).To(ContainSubstring("valid"))
	})

	It("rejects duplicate job names and unknown queues", func() {
		dir := tempDir()
		writeConfig(dir, `queues:
  - name: any

jobs:
  - name: unit
    queue: any
    command: go
  - name: unit
    queue: missing
    command: go
`)
		out, err := rig(dir, "validate")
		Expect(err).To(HaveOccurred())
		Expect(out).To(ContainSubstring("duplicate job name"))
		Expect(out).To(ContainSubstring("unknown queue"))
	})
})

var _ = Describe("rig schema", func() {
	It("emits the JSON Schema for rig.yaml", func() {
		dir := tempDir()
		out := rigOK(dir, "schema")
		Expect(out).To(ContainSubstring(`"$schema"`))
		Expect(out).To(ContainSubstring(`"rig.yaml"`))
	})
})

var _ = Describe("rig version", func() {
	It("prints the version", func() {
		dir := tempDir()
		Expect(rigOK(dir, "version")).To(ContainSubstring("rig"))
	})
})
