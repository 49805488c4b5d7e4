package feature

import "fmt"

/*
Criterion represents a constraint on a discrete feature: the value
it must take. Criteria label the branches of a decision tree.
*/
type Criterion struct {
	feature string
	value   Value
}

/*
NewDiscreteCriterion takes the name of a feature and a value and returns
the criterion satisfied by samples that take that value on the feature.
*/
func NewDiscreteCriterion(feature string, value Value) Criterion {
	return Criterion{feature, value}
}

/*
Feature returns the name of the feature to which the constraint applies.
*/
func (c Criterion) Feature() string {
	return c.feature
}

// Value returns the value to which the feature is constrained.
func (c Criterion) Value() Value {
	return c.value
}

/*
SatisfiedBy receives the value a sample takes on the criterion's feature
and returns whether it satisfies the criterion.
*/
func (c Criterion) SatisfiedBy(v Value) bool {
	return c.value == v
}

func (c Criterion) String() string {
	return fmt.Sprintf("%s is %v", c.feature, c.value)
}
