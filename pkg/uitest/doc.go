// Package uitest provides helpers for testing namify's Bubble Tea models.
//
// [NewTestModel] drives models whose Update returns their concrete type
// through teatest:
//
//	tm := uitest.NewTestModel(t, model, uitest.Standard)
//	tm.Send(uitest.Keys("luke"))
//	uitest.WaitForText(t, tm.Output(), "Luke Skywalker")
//
// [Segments] splits styled output into runs of text sharing one SGR state,
// so tests can assert on colours without matching raw escape sequences:
//
//	uitest.SetupColorProfile()
//	bg := uitest.BackgroundOf(card.View(), "Luke Skywalker")
package uitest
