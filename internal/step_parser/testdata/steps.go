package steps

// @step `I have {int} cats`
func IHaveCats(n int) {}
