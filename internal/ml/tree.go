package ml

import (
	"fmt"

	"github.com/D3XTRO12/miel-ia/internal/features"
)

// treeNode узел решающего дерева. Feature == -1 означает лист,
// Value хранит распределение классов (лес) или скаляр скора (бустинг).
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

type tree struct {
	Nodes []treeNode `json:"nodes"`
}

func (n *treeNode) isLeaf() bool { return n.Feature < 0 }

// leaf спускается от корня до листа по значениям признаков.
// Правило разбиения как в sklearn/xgboost: влево при x <= threshold.
func (t *tree) leaf(row features.Row) (*treeNode, error) {
	if len(t.Nodes) == 0 {
		return nil, fmt.Errorf("дерево без узлов")
	}

	idx := 0
	// глубина не может превышать число узлов, иначе в структуре цикл
	for steps := 0; steps <= len(t.Nodes); steps++ {
		node := &t.Nodes[idx]
		if node.isLeaf() {
			return node, nil
		}
		if node.Feature >= len(row) {
			return nil, fmt.Errorf("узел ссылается на признак %d вне строки длины %d", node.Feature, len(row))
		}

		next := node.Left
		if row[node.Feature] > node.Threshold {
			next = node.Right
		}
		if next < 0 || next >= len(t.Nodes) {
			return nil, fmt.Errorf("узел ссылается на несуществующий дочерний узел %d", next)
		}
		idx = next
	}

	return nil, fmt.Errorf("цикл в структуре дерева")
}

func (t *tree) validate(classes int, scalarLeaves bool) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("дерево без узлов")
	}
	for i := range t.Nodes {
		node := &t.Nodes[i]
		if !node.isLeaf() {
			continue
		}
		want := classes
		if scalarLeaves {
			want = 1
		}
		if len(node.Value) != want {
			return fmt.Errorf("лист %d: ожидалось %d значений, получено %d", i, want, len(node.Value))
		}
	}
	return nil
}
